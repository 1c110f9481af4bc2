package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/touchedelumiere/TDL-BookingService/internal/usecase/get_available_slots"
)

type stubUseCase struct {
	resp *getAvailableSlots.Response
	err  error

	gotReq *getAvailableSlots.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/services/{serviceId}/available-slots", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_ReturnsSlots(t *testing.T) {
	serviceID := uuid.New()
	uc := &stubUseCase{
		resp: &getAvailableSlots.Response{
			Date:            time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
			ServiceID:       serviceID,
			DurationMinutes: 60,
			Slots: []getAvailableSlots.Slot{
				{StartTime: "08:00", Available: true},
				{StartTime: "08:30", Available: false},
			},
		},
	}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/services/"+serviceID.String()+"/available-slots?date=2025-10-13", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-10-13", body.Date)
	assert.Equal(t, serviceID, body.ServiceID)
	assert.Equal(t, 60, body.DurationMinutes)
	assert.False(t, body.Stale)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "08:00", body.Slots[0].StartTime)
	assert.True(t, body.Slots[0].Available)
	assert.False(t, body.Slots[1].Available)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, serviceID, uc.gotReq.ServiceID)
	assert.Equal(t, "2025-10-13", uc.gotReq.Date.Format("2006-01-02"))
}

func TestHandle_InvalidServiceID(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services/not-a-uuid/available-slots?date=2025-10-13", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidServiceID)
}

func TestHandle_MissingDate(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/services/"+uuid.NewString()+"/available-slots", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgMissingDate)
}

func TestHandle_BadDateFormat(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/services/"+uuid.NewString()+"/available-slots?date=13-10-2025", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "service not found", err: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "service inactive", err: getAvailableSlots.ErrServiceInactive, wantStatus: http.StatusBadRequest},
		{name: "date in past", err: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "internal", err: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})

			req := httptest.NewRequest(http.MethodGet,
				"/api/v1/services/"+uuid.NewString()+"/available-slots?date=2025-10-13", nil)
			rec := httptest.NewRecorder()
			newRouter(h).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
