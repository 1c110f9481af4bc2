package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	scheduleRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/schedule"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule/models"
	"github.com/touchedelumiere/TDL-BookingService/pkg/ptr"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

type fakeScheduleRepo struct {
	hours  []domain.OperatingHoursRule
	blocks []domain.DateBlock

	hoursErr  error
	blocksErr error

	upserted     []domain.OperatingHoursRule
	createdBlock *domain.DateBlock
	deletedID    int64
	deleteErr    error
}

func (f *fakeScheduleRepo) GetOperatingHours(_ context.Context) ([]domain.OperatingHoursRule, error) {
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	return f.hours, nil
}

func (f *fakeScheduleRepo) UpsertOperatingHours(_ context.Context, rules []domain.OperatingHoursRule) error {
	f.upserted = rules
	return nil
}

func (f *fakeScheduleRepo) CreateDateBlock(_ context.Context, block *domain.DateBlock) (*domain.DateBlock, error) {
	created := *block
	created.ID = 7
	created.CreatedAt = time.Now()
	f.createdBlock = &created
	return &created, nil
}

func (f *fakeScheduleRepo) ListDateBlocks(_ context.Context, _ time.Time) ([]domain.DateBlock, error) {
	if f.blocksErr != nil {
		return nil, f.blocksErr
	}
	return f.blocks, nil
}

func (f *fakeScheduleRepo) DeleteDateBlock(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTS(t *testing.T, s string) *types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return &ts
}

func openWeek(t *testing.T) []domain.OperatingHoursRule {
	t.Helper()
	return []domain.OperatingHoursRule{
		{ID: 1, DayOfWeek: 1, IsOpen: true, OpenTime: mustTS(t, "08:00"), CloseTime: mustTS(t, "18:00")},
	}
}

func TestLoadForAvailability_FreshRead(t *testing.T) {
	repo := &fakeScheduleRepo{hours: openWeek(t)}
	svc := NewService(repo, nopLogger{})

	hours, blocks, stale := svc.LoadForAvailability(context.Background())

	assert.False(t, stale)
	assert.Len(t, hours, 1)
	assert.Empty(t, blocks)
}

func TestLoadForAvailability_FallsBackToSnapshot(t *testing.T) {
	repo := &fakeScheduleRepo{hours: openWeek(t)}
	svc := NewService(repo, nopLogger{})

	// prime the snapshot with a healthy read
	_, _, stale := svc.LoadForAvailability(context.Background())
	require.False(t, stale)

	// then the database goes away
	repo.hoursErr = errors.New("connection refused")

	hours, _, stale := svc.LoadForAvailability(context.Background())
	assert.True(t, stale)
	require.Len(t, hours, 1)
	assert.Equal(t, 1, hours[0].DayOfWeek)
}

func TestLoadForAvailability_NoSnapshotServesUnconstrained(t *testing.T) {
	repo := &fakeScheduleRepo{hoursErr: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	hours, blocks, stale := svc.LoadForAvailability(context.Background())

	assert.True(t, stale)
	assert.Empty(t, hours)
	assert.Empty(t, blocks)
}

func TestCreateDateBlock_InvalidatesSnapshot(t *testing.T) {
	repo := &fakeScheduleRepo{hours: openWeek(t)}
	svc := NewService(repo, nopLogger{})

	_, _, stale := svc.LoadForAvailability(context.Background())
	require.False(t, stale)

	_, err := svc.CreateDateBlock(context.Background(), &models.CreateDateBlockRequest{
		Title:     "Férias",
		BlockType: string(domain.BlockTypeVacation),
		StartDate: "2025-12-20",
		EndDate:   "2025-12-31",
	})
	require.NoError(t, err)

	// a degraded read after the edit must not serve the stale pre-edit rules
	repo.hoursErr = errors.New("connection refused")
	hours, _, stale := svc.LoadForAvailability(context.Background())
	assert.True(t, stale)
	assert.Empty(t, hours)
}

func TestUpdateOperatingHours_Validation(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name  string
		rules []models.OperatingHoursRuleRequest
	}{
		{
			name:  "day out of range",
			rules: []models.OperatingHoursRuleRequest{{DayOfWeek: 7, IsOpen: false}},
		},
		{
			name: "duplicate day",
			rules: []models.OperatingHoursRuleRequest{
				{DayOfWeek: 1, IsOpen: false},
				{DayOfWeek: 1, IsOpen: false},
			},
		},
		{
			name: "open without times",
			rules: []models.OperatingHoursRuleRequest{
				{DayOfWeek: 1, IsOpen: true},
			},
		},
		{
			name: "open after close",
			rules: []models.OperatingHoursRuleRequest{
				{DayOfWeek: 1, IsOpen: true, OpenTime: ptr.Ptr("18:00"), CloseTime: ptr.Ptr("08:00")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateOperatingHours(ctx, &models.UpdateOperatingHoursRequest{Rules: tt.rules})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateOperatingHours_PersistsRules(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateOperatingHours(context.Background(), &models.UpdateOperatingHoursRequest{
		Rules: []models.OperatingHoursRuleRequest{
			{DayOfWeek: 0, IsOpen: false},
			{DayOfWeek: 1, IsOpen: true, OpenTime: ptr.Ptr("08:00"), CloseTime: ptr.Ptr("20:00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.upserted, 2)
	assert.False(t, repo.upserted[0].IsOpen)
	assert.True(t, repo.upserted[1].IsOpen)
	assert.Equal(t, "08:00", repo.upserted[1].OpenTime.String())
	assert.Equal(t, "20:00", repo.upserted[1].CloseTime.String())
}

func TestCreateDateBlock_Validation(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateDateBlockRequest
	}{
		{
			name: "missing title",
			req: models.CreateDateBlockRequest{
				BlockType: "vacation", StartDate: "2025-12-20", EndDate: "2025-12-31",
			},
		},
		{
			name: "unknown block type",
			req: models.CreateDateBlockRequest{
				Title: "Feriado", BlockType: "holiday", StartDate: "2025-12-25", EndDate: "2025-12-25",
			},
		},
		{
			name: "end before start",
			req: models.CreateDateBlockRequest{
				Title: "Férias", BlockType: "vacation", StartDate: "2025-12-31", EndDate: "2025-12-20",
			},
		},
		{
			name: "start time without end time",
			req: models.CreateDateBlockRequest{
				Title: "Manutenção", BlockType: "maintenance",
				StartDate: "2025-12-20", EndDate: "2025-12-20",
				StartTime: ptr.Ptr("09:00"),
			},
		},
		{
			name: "single day window inverted",
			req: models.CreateDateBlockRequest{
				Title: "Manutenção", BlockType: "maintenance",
				StartDate: "2025-12-20", EndDate: "2025-12-20",
				StartTime: ptr.Ptr("12:00"), EndTime: ptr.Ptr("09:00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDateBlock(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateDateBlock_MultiDayWindowMayWrapMidnight(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, nopLogger{})

	// 22:00 on the first day through 06:00 on the last day
	resp, err := svc.CreateDateBlock(context.Background(), &models.CreateDateBlockRequest{
		Title:     "Compromisso externo",
		BlockType: string(domain.BlockTypeExternalCommitment),
		StartDate: "2025-11-10",
		EndDate:   "2025-11-12",
		StartTime: ptr.Ptr("22:00"),
		EndTime:   ptr.Ptr("06:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	require.NotNil(t, repo.createdBlock.StartTime)
	assert.Equal(t, "22:00", repo.createdBlock.StartTime.String())
}

func TestDeleteDateBlock_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{deleteErr: scheduleRepo.ErrBlockNotFound}
	svc := NewService(repo, nopLogger{})

	err := svc.DeleteDateBlock(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBlockNotFound)
	assert.Equal(t, int64(99), repo.deletedID)
}
