package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/touchedelumiere/TDL-BookingService/internal/availability"
	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	catalogRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/servicecatalog"
)

// UseCase books one slot. The availability gates run twice per booking:
// once on the public page and again here, inside a serializable
// transaction with the date's appointment rows locked. The page read is
// advisory; this re-check is the one that counts.
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the usecase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute creates a pending appointment after re-validating the slot
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%s, service=%s, date=%s, time=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate the request shape
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Capture the current time once
	now := uc.timeProvider.Now()

	// 3. Reject past dates
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. Resolve the service outside the transaction; catalog edits during
	// a booking are harmless because the data is denormalized anyway
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	var result *domain.Appointment

	// 5. Re-check availability and insert inside a serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Load the schedule rule sets, strictly: the write path never
		// books against a guess
		hours, err := uc.scheduleRepo.GetOperatingHours(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get operating hours: %v", err)
			return fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
		}

		blocks, err := uc.scheduleRepo.ListDateBlocks(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get date blocks: %v", err)
			return fmt.Errorf("%w: failed to get date blocks: %v", ErrInternal, err)
		}

		// 5.2. Load the date's active appointments with the rows locked
		// (FOR UPDATE); concurrent bookings for the same date serialize here
		filter := domain.AppointmentsFilter{
			Date:            &req.Date,
			IncludeInactive: false,
		}
		appointments, err := uc.appointmentRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.3. Run the four availability gates against the locked state
		candidate := domain.CandidateSlot{
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
		}
		if !availability.IsSlotAvailable(candidate, appointments, hours, blocks, now) {
			uc.logger.Warn("CreateAppointment: slot %s %s not available for service=%s",
				req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceID)
			return ErrSlotNotAvailable
		}

		// 5.4. Insert the appointment as pending with denormalized data
		appointment := &domain.Appointment{
			ClientID:        req.ClientID,
			ServiceID:       req.ServiceID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.NamePT,
			ServicePrice:    service.Price,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: appointment id=%s created for client=%s", result.ID, result.ClientID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ServiceID:       result.ServiceID,
		Date:            result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		ClientPhone:     result.ClientPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
