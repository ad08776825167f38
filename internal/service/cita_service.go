package service

import (
	"context"
	"fmt"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/worker"

	"github.com/rs/zerolog/log"
)

// CitaService manages salon appointments.
type CitaService interface {
	Crear(ctx context.Context, req dto.CrearCitaRequest) (*dto.CitaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.CitaResponse, error)
	Listar(ctx context.Context, filter dto.CitaFilter) (*dto.CitaListResponse, error)
	ActualizarEstado(ctx context.Context, id uint, estado string) (*dto.CitaResponse, error)
	Reprogramar(ctx context.Context, id uint, req dto.ReprogramarCitaRequest) (*dto.CitaResponse, error)
}

type citaService struct {
	repo       repository.CitaRepository
	dispatcher *worker.Dispatcher
}

func NewCitaService(repo repository.CitaRepository, dispatcher *worker.Dispatcher) CitaService {
	return &citaService{repo: repo, dispatcher: dispatcher}
}

// Crear books an appointment. A fecha+hora slot admits a single
// non-cancelled cita; booking in the past is rejected.
func (s *citaService) Crear(ctx context.Context, req dto.CrearCitaRequest) (*dto.CitaResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, apierror.Validation("Fecha inválida, use YYYY-MM-DD")
	}
	if fecha.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, apierror.Validation("No se pueden agendar citas en fechas pasadas")
	}

	ocupado, err := s.repo.ExisteEnSlot(ctx, fecha, req.Hora, 0)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if ocupado {
		return nil, apierror.Conflict("El horario ya está ocupado")
	}

	cita := &model.Cita{
		ClienteNombre:   req.ClienteNombre,
		ClienteEmail:    req.ClienteEmail,
		ClienteTelefono: req.ClienteTelefono,
		Servicio:        req.Servicio,
		Fecha:           fecha,
		Hora:            req.Hora,
		Estado:          model.CitaPendiente,
		Notas:           req.Notas,
	}
	if err := s.repo.Create(ctx, cita); err != nil {
		return nil, apierror.Internal(err)
	}

	s.notificar(ctx, cita, "Cita agendada — Salón Sandra Fajardo",
		fmt.Sprintf("Hola %s, su cita de %s quedó agendada para el %s a las %s.",
			cita.ClienteNombre, cita.Servicio, cita.Fecha.Format("02/01/2006"), cita.Hora))

	return citaToResponse(cita), nil
}

func (s *citaService) ObtenerPorID(ctx context.Context, id uint) (*dto.CitaResponse, error) {
	cita, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cita no encontrada")
	}
	return citaToResponse(cita), nil
}

func (s *citaService) Listar(ctx context.Context, filter dto.CitaFilter) (*dto.CitaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	citas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	data := make([]dto.CitaResponse, 0, len(citas))
	for i := range citas {
		data = append(data, *citaToResponse(&citas[i]))
	}
	return &dto.CitaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *citaService) ActualizarEstado(ctx context.Context, id uint, estado string) (*dto.CitaResponse, error) {
	cita, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cita no encontrada")
	}
	if cita.Estado == model.CitaCancelada && estado != model.CitaCancelada {
		return nil, apierror.Conflict("Una cita cancelada no puede cambiar de estado")
	}

	cita.Estado = estado
	if err := s.repo.Update(ctx, cita); err != nil {
		return nil, apierror.Internal(err)
	}

	if estado == model.CitaConfirmada {
		s.notificar(ctx, cita, "Cita confirmada — Salón Sandra Fajardo",
			fmt.Sprintf("Hola %s, su cita del %s a las %s fue confirmada. ¡La esperamos!",
				cita.ClienteNombre, cita.Fecha.Format("02/01/2006"), cita.Hora))
	}
	return citaToResponse(cita), nil
}

func (s *citaService) Reprogramar(ctx context.Context, id uint, req dto.ReprogramarCitaRequest) (*dto.CitaResponse, error) {
	cita, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cita no encontrada")
	}
	if cita.Estado == model.CitaCancelada || cita.Estado == model.CitaCompletada {
		return nil, apierror.Conflict("Solo se pueden reprogramar citas pendientes o confirmadas")
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, apierror.Validation("Fecha inválida, use YYYY-MM-DD")
	}

	ocupado, err := s.repo.ExisteEnSlot(ctx, fecha, req.Hora, cita.ID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if ocupado {
		return nil, apierror.Conflict("El horario ya está ocupado")
	}

	cita.Fecha = fecha
	cita.Hora = req.Hora
	cita.Estado = model.CitaPendiente
	if err := s.repo.Update(ctx, cita); err != nil {
		return nil, apierror.Internal(err)
	}

	s.notificar(ctx, cita, "Cita reprogramada — Salón Sandra Fajardo",
		fmt.Sprintf("Hola %s, su cita fue reprogramada para el %s a las %s.",
			cita.ClienteNombre, cita.Fecha.Format("02/01/2006"), cita.Hora))

	return citaToResponse(cita), nil
}

// notificar enqueues the notification email, best-effort.
func (s *citaService) notificar(ctx context.Context, cita *model.Cita, subject, body string) {
	if s.dispatcher == nil || cita.ClienteEmail == "" {
		return
	}
	payload := worker.EmailJobPayload{ToEmail: cita.ClienteEmail, Subject: subject, Body: body}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Warn().Err(err).Uint("cita_id", cita.ID).Msg("cita: no se pudo encolar la notificación")
	}
}

func citaToResponse(c *model.Cita) *dto.CitaResponse {
	return &dto.CitaResponse{
		ID:              c.ID,
		ClienteNombre:   c.ClienteNombre,
		ClienteEmail:    c.ClienteEmail,
		ClienteTelefono: c.ClienteTelefono,
		Servicio:        c.Servicio,
		Fecha:           c.Fecha.Format("2006-01-02"),
		Hora:            c.Hora,
		Estado:          c.Estado,
		Notas:           c.Notas,
	}
}
