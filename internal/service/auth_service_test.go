package service

import (
	"context"
	"testing"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/config"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	assert.NoError(t, err)
	u := &model.Usuario{Username: username, Nombre: "Test User", PasswordHash: string(hash), Rol: rol, Activo: true}
	assert.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginOK(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(t, repo, "sandra", "secreta1", "administrador")
	svc := NewAuthService(repo, newTestCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "sandra", Password: "secreta1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)

	// El access token firma los claims esperados
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "sandra", claims["username"])
	assert.Equal(t, "administrador", claims["rol"])
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(t, repo, "sandra", "secreta1", "administrador")
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "sandra", Password: "otra"})
	assert.Equal(t, 401, apierror.From(err).Status)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUsuario(t, repo, "sandra", "secreta1", "recepcionista")
	u.Activo = false
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "sandra", Password: "secreta1"})
	assert.Equal(t, 401, apierror.From(err).Status)
}

func TestRefreshEmiteNuevosTokens(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(t, repo, "sandra", "secreta1", "administrador")
	svc := NewAuthService(repo, newTestCfg())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "sandra", Password: "secreta1"})
	assert.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshTokenBasura(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), newTestCfg())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.Equal(t, 401, apierror.From(err).Status)
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(t, repo, "sandra", "secreta1", "administrador")
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "sandra", Nombre: "Otra", Password: "secreta2", Rol: "recepcionista",
	})
	assert.Equal(t, 409, apierror.From(err).Status)
}
