package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	appointmentRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/appointment"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/appointments/models"
)

// StudioInfo carries the studio identity used in notifications and
// calendar events
type StudioInfo struct {
	Name     string
	Address  string
	Phone    string
	Timezone string
}

// Service handles the appointment lifecycle after creation: lookups,
// confirmation, cancellation, completion and the admin purge. Creation
// itself lives in the create_appointment usecase because it needs the
// serializable availability re-check.
type Service struct {
	appointmentRepo AppointmentRepository
	emailClient     EmailClient
	whatsappClient  WhatsAppClient
	calendarClient  CalendarClient
	studio          StudioInfo
	logger          Logger
}

// NewService creates an appointments service
func NewService(
	appointmentRepo AppointmentRepository,
	emailClient EmailClient,
	whatsappClient WhatsAppClient,
	calendarClient CalendarClient,
	studio StudioInfo,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		emailClient:     emailClient,
		whatsappClient:  whatsappClient,
		calendarClient:  calendarClient,
		studio:          studio,
		logger:          logger,
	}
}

// GetByID fetches one appointment. Clients may only see their own
// appointments; admins see everything.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for requester=%s", id, requesterID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && appointment.ClientID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%s to appointment id=%s", requesterID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetClientAppointments returns one client's history, optionally filtered
// by status
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%s, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for client=%s", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetAdminAppointments returns the studio-wide appointment list with
// optional date, period and status filters. Admin-only; the handler layer
// enforces the role.
func (s *Service) GetAdminAppointments(ctx context.Context, req *models.GetAdminAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := "GetAdminAppointments: fetching appointments"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAdminAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdminAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdminAppointments: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Confirm moves a pending appointment to confirmed, notifies the client
// and mirrors the session onto the studio calendar. Notifications and the
// calendar event are best-effort: their failures are logged, never
// propagated.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%s", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Confirm: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Confirm: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if !appointment.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%s cannot be confirmed, status=%s", id, appointment.Status)
		return nil, ErrCannotConfirm
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: failed to update status for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}
	appointment.Status = domain.StatusConfirmed

	s.notifyConfirmation(ctx, appointment)
	s.createCalendarEvent(ctx, appointment)

	s.logger.Info("Confirm: appointment id=%s confirmed", id)
	return models.FromDomainAppointment(appointment), nil
}

// Cancel cancels an appointment. Clients may cancel their own; admins may
// cancel any. The stored cancelled_by records which side triggered it,
// which selects the notification template.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by requester=%s", id, req.RequesterID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	cancelledBy := domain.CancelledByClient
	if appointment.ClientID != req.RequesterID {
		if !req.IsAdmin {
			s.logger.Warn("Cancel: access denied for requester=%s to appointment id=%s", req.RequesterID, id)
			return ErrAccessDenied
		}
		cancelledBy = domain.CancelledByStudio
	}

	if err := s.appointmentRepo.Cancel(ctx, id, cancelledBy, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	appointment.Status = domain.StatusCancelled
	if req.CancellationReason != "" {
		appointment.CancellationReason = &req.CancellationReason
	}

	s.notifyCancellation(ctx, appointment)
	s.deleteCalendarEvent(ctx, appointment)

	s.logger.Info("Cancel: appointment id=%s cancelled by %s", id, cancelledBy)
	return nil
}

// Complete marks a confirmed appointment as completed after the session
func (s *Service) Complete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Complete: completing appointment id=%s", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Complete: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Complete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if !appointment.CanBeCompleted() {
		s.logger.Warn("Complete: appointment id=%s cannot be completed, status=%s", id, appointment.Status)
		return ErrCannotComplete
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		s.logger.Error("Complete: failed to update status for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: appointment id=%s completed", id)
	return nil
}

// Remind re-sends the session details to the client of a confirmed
// appointment. Unlike the lifecycle notifications this one is explicit
// (the admin pressed the button), so delivery failure is reported.
func (s *Service) Remind(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Remind: sending reminder for appointment id=%s", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Remind: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Remind: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Remind - repository error: %v", ErrInternal, err)
	}

	if appointment.Status != domain.StatusConfirmed {
		s.logger.Warn("Remind: appointment id=%s is not confirmed, status=%s", id, appointment.Status)
		return ErrCannotRemind
	}

	if err := s.notifyReminder(ctx, appointment); err != nil {
		return err
	}

	s.logger.Info("Remind: reminder sent for appointment id=%s", id)
	return nil
}

// Purge deletes every appointment. Admin-only maintenance operation used
// to reset test environments; returns the number of deleted rows.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	s.logger.Warn("Purge: deleting all appointments")

	deleted, err := s.appointmentRepo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("Purge: repository error: %v", err)
		return 0, fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
	}

	s.logger.Warn("Purge: deleted %d appointments", deleted)
	return deleted, nil
}
