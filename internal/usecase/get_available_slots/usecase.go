package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/touchedelumiere/TDL-BookingService/internal/availability"
	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	catalogRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/servicecatalog"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// UseCase evaluates the published slot grid for one service and date
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	schedule        ScheduleProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the usecase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	schedule ScheduleProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		schedule:        schedule,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute walks the published grid (08:00 through 20:00, every 30 minutes)
// and evaluates each position against the four availability gates.
//
// Schedule and appointment loads fail open: a failed load degrades to the
// last snapshot or to an empty set, and the response is flagged stale.
// The serializable re-check at creation time keeps double-booking
// impossible regardless of what a degraded read promised.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Validate the request shape
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Capture the current time once; every gate sees the same instant
	now := uc.timeProvider.Now()

	// 3. Reject past dates
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Resolve the service; its duration shapes the overlap windows
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 5. Load the schedule rule sets, degrading to a snapshot on failure
	hours, blocks, stale := uc.schedule.LoadForAvailability(ctx)

	// 6. Load the active appointments for the date; a failed load degrades
	// to an empty set instead of refusing the whole page
	filter := domain.AppointmentsFilter{
		Date:            &req.Date,
		IncludeInactive: false,
	}
	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		appointments = nil
		stale = true
	}

	// 7. Evaluate every grid position
	slots := make([]Slot, 0, (domain.GridEndMinutes-domain.GridStartMinutes)/domain.GridStepMinutes+1)
	for minutes := domain.GridStartMinutes; minutes <= domain.GridEndMinutes; minutes += domain.GridStepMinutes {
		startTime, err := types.NewTimeStringFromMinutes(minutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to build grid time: %v", ErrInternal, err)
		}

		candidate := domain.CandidateSlot{
			Date:            req.Date,
			StartTime:       startTime,
			DurationMinutes: service.DurationMinutes,
		}

		slots = append(slots, Slot{
			StartTime: startTime,
			Available: availability.IsSlotAvailable(candidate, appointments, hours, blocks, now),
		})
	}

	available := 0
	for _, slot := range slots {
		if slot.Available {
			available++
		}
	}
	uc.logger.Info("GetAvailableSlots: %d/%d slots available for service=%s, date=%s, stale=%t",
		available, len(slots), req.ServiceID, req.Date.Format(domain.DateFormat), stale)

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Stale:           stale,
		Slots:           slots,
	}, nil
}
