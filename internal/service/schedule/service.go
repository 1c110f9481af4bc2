package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	scheduleRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/schedule"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule/models"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// Service manages operating hours and date blocks, and serves the
// schedule data the availability evaluator consumes.
//
// Availability reads fail open: when the database is unreachable the
// service answers from the last snapshot it managed to load, flagged as
// stale. With no snapshot either, it returns empty rule sets, which the
// evaluator treats as unconstrained. Double-booking is still impossible
// because creation re-checks inside a serializable transaction.
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger

	mu       sync.RWMutex
	snapshot *scheduleSnapshot
}

type scheduleSnapshot struct {
	hours    []domain.OperatingHoursRule
	blocks   []domain.DateBlock
	loadedAt time.Time
}

// NewService creates a schedule service
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetSchedule returns the public view: weekly hours plus upcoming blocks
func (s *Service) GetSchedule(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule")

	hours, err := s.scheduleRepo.GetOperatingHours(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: failed to load operating hours: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	blocks, err := s.scheduleRepo.ListDateBlocks(ctx, time.Now())
	if err != nil {
		s.logger.Error("GetSchedule: failed to load date blocks: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.storeSnapshot(hours, blocks)

	return &models.ScheduleResponse{
		OperatingHours: models.FromDomainOperatingHours(hours),
		DateBlocks:     models.FromDomainDateBlocks(blocks),
	}, nil
}

// LoadForAvailability returns the rule sets the availability evaluator
// needs. Repository failures fall back to the last snapshot (stale=true);
// with no snapshot at all it returns empty sets, also flagged stale.
func (s *Service) LoadForAvailability(ctx context.Context) (hours []domain.OperatingHoursRule, blocks []domain.DateBlock, stale bool) {
	hours, hoursErr := s.scheduleRepo.GetOperatingHours(ctx)
	blocks, blocksErr := s.scheduleRepo.ListDateBlocks(ctx, time.Now())

	if hoursErr == nil && blocksErr == nil {
		s.storeSnapshot(hours, blocks)
		return hours, blocks, false
	}

	if hoursErr != nil {
		s.logger.Error("LoadForAvailability: failed to load operating hours: %v", hoursErr)
	}
	if blocksErr != nil {
		s.logger.Error("LoadForAvailability: failed to load date blocks: %v", blocksErr)
	}

	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil {
		s.logger.Warn("LoadForAvailability: serving schedule snapshot from %s", snap.loadedAt.Format(time.RFC3339))
		return snap.hours, snap.blocks, true
	}

	s.logger.Warn("LoadForAvailability: no snapshot available, serving unconstrained schedule")
	return nil, nil, true
}

// UpdateOperatingHours replaces the weekly ruleset
func (s *Service) UpdateOperatingHours(ctx context.Context, req *models.UpdateOperatingHoursRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateOperatingHours: updating %d rules", len(req.Rules))

	rules, err := s.validateRules(req.Rules)
	if err != nil {
		s.logger.Warn("UpdateOperatingHours: validation failed: %v", err)
		return nil, err
	}

	if err := s.scheduleRepo.UpsertOperatingHours(ctx, rules); err != nil {
		s.logger.Error("UpdateOperatingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateOperatingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOperatingHours: rules updated")
	return s.GetSchedule(ctx)
}

// CreateDateBlock adds an unavailability range
func (s *Service) CreateDateBlock(ctx context.Context, req *models.CreateDateBlockRequest) (*models.DateBlockResponse, error) {
	s.logger.Info("CreateDateBlock: creating block title=%q, type=%s", req.Title, req.BlockType)

	block, err := s.validateBlock(req)
	if err != nil {
		s.logger.Warn("CreateDateBlock: validation failed: %v", err)
		return nil, err
	}

	created, err := s.scheduleRepo.CreateDateBlock(ctx, block)
	if err != nil {
		s.logger.Error("CreateDateBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateDateBlock - repository error: %v", ErrInternal, err)
	}

	s.invalidateSnapshot()

	s.logger.Info("CreateDateBlock: block created, id=%d", created.ID)
	return models.FromDomainDateBlock(created), nil
}

// ListDateBlocks returns blocks still relevant today or later
func (s *Service) ListDateBlocks(ctx context.Context) ([]models.DateBlockResponse, error) {
	s.logger.Info("ListDateBlocks: fetching blocks")

	blocks, err := s.scheduleRepo.ListDateBlocks(ctx, time.Now())
	if err != nil {
		s.logger.Error("ListDateBlocks: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDateBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDateBlocks(blocks), nil
}

// DeleteDateBlock removes a block
func (s *Service) DeleteDateBlock(ctx context.Context, id int64) error {
	s.logger.Info("DeleteDateBlock: deleting block id=%d", id)

	if err := s.scheduleRepo.DeleteDateBlock(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteDateBlock: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteDateBlock: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteDateBlock - repository error: %v", ErrInternal, err)
	}

	s.invalidateSnapshot()

	s.logger.Info("DeleteDateBlock: block id=%d deleted", id)
	return nil
}

// Snapshot handling

func (s *Service) storeSnapshot(hours []domain.OperatingHoursRule, blocks []domain.DateBlock) {
	s.mu.Lock()
	s.snapshot = &scheduleSnapshot{
		hours:    hours,
		blocks:   blocks,
		loadedAt: time.Now(),
	}
	s.mu.Unlock()
}

// invalidateSnapshot drops the cached copy after schedule edits, so a
// following degraded read can never resurrect rules the admin just changed
func (s *Service) invalidateSnapshot() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

// Validation

func (s *Service) validateRules(reqs []models.OperatingHoursRuleRequest) ([]domain.OperatingHoursRule, error) {
	seen := make(map[int]bool, len(reqs))
	rules := make([]domain.OperatingHoursRule, 0, len(reqs))

	for _, req := range reqs {
		if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: dayOfWeek must be 0..6, got %d", ErrInvalidInput, req.DayOfWeek)
		}
		if seen[req.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidInput, req.DayOfWeek)
		}
		seen[req.DayOfWeek] = true

		rule := domain.OperatingHoursRule{
			DayOfWeek: req.DayOfWeek,
			IsOpen:    req.IsOpen,
		}

		if req.IsOpen {
			open, err := parseTime(req.OpenTime)
			if err != nil {
				return nil, fmt.Errorf("%w: openTime for day %d: %v", ErrInvalidInput, req.DayOfWeek, err)
			}
			closeT, err := parseTime(req.CloseTime)
			if err != nil {
				return nil, fmt.Errorf("%w: closeTime for day %d: %v", ErrInvalidInput, req.DayOfWeek, err)
			}
			if !open.IsBefore(*closeT) {
				return nil, fmt.Errorf("%w: openTime must be before closeTime for day %d", ErrInvalidInput, req.DayOfWeek)
			}
			rule.OpenTime = open
			rule.CloseTime = closeT
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func (s *Service) validateBlock(req *models.CreateDateBlockRequest) (*domain.DateBlock, error) {
	if req.Title == "" || len(req.Title) > domain.MaxBlockTitleLength {
		return nil, fmt.Errorf("%w: title is required and must not exceed %d characters",
			ErrInvalidInput, domain.MaxBlockTitleLength)
	}

	blockType := domain.BlockType(req.BlockType)
	if !domain.ValidBlockType(blockType) {
		return nil, fmt.Errorf("%w: unknown blockType %q", ErrInvalidInput, req.BlockType)
	}

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate %q", ErrInvalidInput, req.StartDate)
	}
	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate %q", ErrInvalidInput, req.EndDate)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if (req.StartTime == nil) != (req.EndTime == nil) {
		return nil, fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidInput)
	}

	block := &domain.DateBlock{
		Title:       req.Title,
		Description: req.Description,
		BlockType:   blockType,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedBy:   req.CreatedBy,
	}

	if req.StartTime != nil {
		startTime, err := parseTime(req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		endTime, err := parseTime(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
		}
		// same-day partial blocks need an ordered window; multi-day windows
		// wrap midnight by design and stay unordered
		if domain.SameDay(startDate, endDate) && !startTime.IsBefore(*endTime) {
			return nil, fmt.Errorf("%w: startTime must be before endTime for single-day blocks", ErrInvalidInput)
		}
		block.StartTime = startTime
		block.EndTime = endTime
	}

	return block, nil
}

func parseTime(raw *string) (*types.TimeString, error) {
	if raw == nil || *raw == "" {
		return nil, errors.New("value is required")
	}
	ts, err := types.NewTimeStringFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
