package service

import (
	"context"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id uint) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if _, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, apierror.Conflict("Ya existe una categoría con ese nombre")
	}

	categoria := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion, Activo: true}
	if err := s.repo.Create(ctx, categoria); err != nil {
		return nil, apierror.Internal(err)
	}
	return categoriaToResponse(categoria), nil
}

func (s *categoriaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	data := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		data = append(data, *categoriaToResponse(&categorias[i]))
	}
	return data, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uint, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Categoría no encontrada")
	}
	categoria.Nombre = req.Nombre
	categoria.Descripcion = req.Descripcion
	if err := s.repo.Update(ctx, categoria); err != nil {
		return nil, apierror.Internal(err)
	}
	return categoriaToResponse(categoria), nil
}

func (s *categoriaService) Desactivar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Categoría no encontrada")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

func categoriaToResponse(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
}
