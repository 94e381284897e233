package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/handlers"
	"gigBoard/internal/handlers/dto"
	"gigBoard/internal/models/gig"
	"gigBoard/internal/notification"
	"gigBoard/internal/repository"
	"gigBoard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGigService - мок сервиса
type MockGigService struct {
	mock.Mock
}

func (m *MockGigService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGigService) ListRanked(ctx context.Context, status *gigstatus.Status) ([]gigstatus.Ranked, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gigstatus.Ranked), args.Error(1)
}

func (m *MockGigService) GetGig(ctx context.Context, id string) (gigstatus.Ranked, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(gigstatus.Ranked), args.Error(1)
}

func (m *MockGigService) CreateGig(ctx context.Context, g gig.Gig) (gigstatus.Ranked, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(gigstatus.Ranked), args.Error(1)
}

func (m *MockGigService) DeleteGig(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGigService) Summary(ctx context.Context) (service.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.Summary), args.Error(1)
}

func (m *MockGigService) Notifications(ctx context.Context) ([]notification.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

var _ handlers.GigService = (*MockGigService)(nil)

var now = time.Date(2025, time.September, 25, 12, 0, 0, 0, time.UTC)

func rank(gigs ...gig.Gig) []gigstatus.Ranked {
	return gigstatus.NewClassifier(gigstatus.WithLocation(time.UTC)).Rank(gigs, now)
}

func newRouter(svc handlers.GigService) http.Handler {
	h := handlers.NewGigHandler(svc)
	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Route("/gigs", func(r chi.Router) {
		r.Get("/", h.ListGigs)
		r.Post("/", h.PostGig)
		r.Get("/summary", h.Summary)
		r.Get("/{id}", h.GetGigByID)
		r.Delete("/{id}", h.DeleteGigByID)
	})
	r.Get("/notifications", h.Notifications)
	return r
}

func serve(t *testing.T, svc handlers.GigService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)
	return w
}

// TestGigHandler_HealthCheck тестирует HealthCheck
func TestGigHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockGigService)
		expectedStatus int
	}{
		{
			name: "success - healthy",
			setupMock: func(m *MockGigService) {
				m.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - unhealthy",
			setupMock: func(m *MockGigService) {
				m.On("HealthCheck", mock.Anything).Return(errors.New("service unavailable"))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGigService)
			tt.setupMock(mockService)

			w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), "gigboard")
			mockService.AssertExpectations(t)
		})
	}
}

// TestGigHandler_ListGigs тестирует выдачу и фильтр по статусу
func TestGigHandler_ListGigs(t *testing.T) {
	ranked := rank(
		gig.New("a", "Old job", "1st September 2025, 10:00"),
		gig.New("b", "Parcel", "20th September 2025, 10:00", gig.WithDeadline("2025-09-27")),
	)
	urgent := gigstatus.StatusUrgent

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockGigService)
		expectedStatus int
		expectedIDs    []string
	}{
		{
			name: "success - all gigs",
			setupMock: func(m *MockGigService) {
				m.On("ListRanked", mock.Anything, (*gigstatus.Status)(nil)).Return(ranked, nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"b", "a"},
		},
		{
			name:  "success - status filter",
			query: "?status=urgent",
			setupMock: func(m *MockGigService) {
				m.On("ListRanked", mock.Anything, &urgent).Return([]gigstatus.Ranked{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{},
		},
		{
			name:           "error - unknown status",
			query:          "?status=stale",
			setupMock:      func(m *MockGigService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - service error",
			setupMock: func(m *MockGigService) {
				m.On("ListRanked", mock.Anything, (*gigstatus.Status)(nil)).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGigService)
			tt.setupMock(mockService)

			w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/gigs"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response []dto.GigResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				ids := make([]string, 0, len(response))
				for _, r := range response {
					ids = append(ids, r.Gig.ID)
				}
				assert.Equal(t, tt.expectedIDs, ids)
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestGigHandler_ListGigs_Body проверяет форму ответа
func TestGigHandler_ListGigs_Body(t *testing.T) {
	mockService := new(MockGigService)
	mockService.On("ListRanked", mock.Anything, (*gigstatus.Status)(nil)).
		Return(rank(gig.New("u", "Office move", "20th September 2025, 12:00", gig.WithDeadline("2025-10-10"), gig.WithStatusLabel(gig.LabelUrgent))), nil)

	w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/gigs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)

	info := body[0]["status_info"].(map[string]any)
	assert.Equal(t, "URGENT", info["status"])
	assert.Equal(t, float64(3), info["priority"])
	assert.Equal(t, float64(5), info["days_since_posted"])
	assert.Equal(t, true, info["is_active"])

	g := body[0]["gig"].(map[string]any)
	assert.NotContains(t, g, "status_info")
	assert.Equal(t, gig.LabelUrgent, g["status"])
}

// TestGigHandler_PostGig тестирует создание гига
func TestGigHandler_PostGig(t *testing.T) {
	created := rank(gig.New("g-1", "Garage shuttle", "25th September 2025, 09:00", gig.WithPay("£20")))[0]

	tests := []struct {
		name           string
		requestBody    string
		contentType    string
		setupMock      func(*MockGigService)
		expectedStatus int
	}{
		{
			name:        "success - create gig",
			requestBody: `{"id":"g-1","description":"Garage shuttle","pay":"£20","posted_date":"25th September 2025, 09:00"}`,
			contentType: "application/json; charset=utf-8",
			setupMock: func(m *MockGigService) {
				m.On("CreateGig", mock.Anything, gig.New("g-1", "Garage shuttle", "25th September 2025, 09:00", gig.WithPay("£20"))).
					Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "error - invalid content type",
			requestBody:    `{}`,
			contentType:    "text/plain",
			setupMock:      func(m *MockGigService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "error - invalid JSON",
			requestBody:    `{invalid json}`,
			contentType:    "application/json",
			setupMock:      func(m *MockGigService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - unknown field",
			requestBody:    `{"title":"x"}`,
			contentType:    "application/json",
			setupMock:      func(m *MockGigService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "error - validation",
			requestBody: `{"description":"x","posted_date":"someday"}`,
			contentType: "application/json",
			setupMock: func(m *MockGigService) {
				m.On("CreateGig", mock.Anything, mock.Anything).
					Return(gigstatus.Ranked{}, service.NewValidationError("posted_date", "не разобрана"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "error - conflict",
			requestBody: `{"id":"g-1","description":"x","posted_date":"1st September 2025"}`,
			contentType: "application/json",
			setupMock: func(m *MockGigService) {
				m.On("CreateGig", mock.Anything, mock.Anything).
					Return(gigstatus.Ranked{}, service.NewAlreadyExists("g-1", repository.ErrAlreadyExists))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "error - service error",
			requestBody: `{"description":"x","posted_date":"1st September 2025"}`,
			contentType: "application/json",
			setupMock: func(m *MockGigService) {
				m.On("CreateGig", mock.Anything, mock.Anything).
					Return(gigstatus.Ranked{}, errors.New("service error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGigService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/gigs", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", tt.contentType)

			w := serve(t, mockService, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var response dto.GigResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, "g-1", response.Gig.ID)
				assert.Equal(t, gigstatus.StatusNew, response.StatusInfo.Status)
				assert.Equal(t, "/gigs/g-1", w.Header().Get("Location"))
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestGigHandler_GetGigByID тестирует получение гига по ID
func TestGigHandler_GetGigByID(t *testing.T) {
	found := rank(gig.New("g-1", "Parcel", "1st September 2025", gig.WithDeadline("2025-09-20")))[0]

	tests := []struct {
		name           string
		setupMock      func(*MockGigService)
		expectedStatus int
	}{
		{
			name: "success - get gig",
			setupMock: func(m *MockGigService) {
				m.On("GetGig", mock.Anything, "g-1").Return(found, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - gig not found",
			setupMock: func(m *MockGigService) {
				m.On("GetGig", mock.Anything, "g-1").
					Return(gigstatus.Ranked{}, service.NewNotFound("g-1", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "error - service error",
			setupMock: func(m *MockGigService) {
				m.On("GetGig", mock.Anything, "g-1").Return(gigstatus.Ranked{}, errors.New("internal error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGigService)
			tt.setupMock(mockService)

			w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/gigs/g-1", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response dto.GigResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, "g-1", response.Gig.ID)
				assert.Equal(t, gigstatus.StatusClosed, response.StatusInfo.Status)
				assert.False(t, response.StatusInfo.IsActive)
			}
			if tt.expectedStatus == http.StatusNotFound {
				var response map[string]any
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, service.CodeNotFound, response["error"])
			}
			mockService.AssertExpectations(t)
		})
	}
}

// TestGigHandler_DeleteGigByID тестирует удаление гига
func TestGigHandler_DeleteGigByID(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockGigService)
		expectedStatus int
	}{
		{
			name: "success - delete gig",
			setupMock: func(m *MockGigService) {
				m.On("DeleteGig", mock.Anything, "g-1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "error - gig not found",
			setupMock: func(m *MockGigService) {
				m.On("DeleteGig", mock.Anything, "g-1").Return(service.NewNotFound("g-1", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "error - service error",
			setupMock: func(m *MockGigService) {
				m.On("DeleteGig", mock.Anything, "g-1").Return(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGigService)
			tt.setupMock(mockService)

			w := serve(t, mockService, httptest.NewRequest(http.MethodDelete, "/gigs/g-1", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestGigHandler_Summary тестирует сводку по статусам
func TestGigHandler_Summary(t *testing.T) {
	mockService := new(MockGigService)
	mockService.On("Summary", mock.Anything).Return(service.Summary{
		Total:  3,
		Active: 2,
		ByStatus: map[gigstatus.Status]int{
			gigstatus.StatusClosingSoon: 1,
			gigstatus.StatusOpen:        1,
			gigstatus.StatusClosed:      1,
		},
	}, nil)

	w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/gigs/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total    int            `json:"total"`
		Active   int            `json:"active"`
		ByStatus map[string]int `json:"by_status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.Active)
	assert.Equal(t, 1, body.ByStatus["CLOSING SOON"])
	mockService.AssertExpectations(t)
}

// TestGigHandler_Notifications тестирует выдачу уведомлений
func TestGigHandler_Notifications(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockGigService)
		mockService.On("Notifications", mock.Anything).Return([]notification.Notification{
			{ID: "urgent_gig-u", GigID: "u", Kind: notification.KindUrgentGig, Priority: 3},
		}, nil)

		w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/notifications", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body []notification.Notification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, notification.KindUrgentGig, body[0].Kind)
	})

	t.Run("service error", func(t *testing.T) {
		mockService := new(MockGigService)
		mockService.On("Notifications", mock.Anything).Return(nil, errors.New("boom"))

		w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/notifications", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// TestGigHandler_UnknownBusinessError тестирует код бизнес-ошибки без явного маппинга
func TestGigHandler_UnknownBusinessError(t *testing.T) {
	mockService := new(MockGigService)
	mockService.On("GetGig", mock.Anything, "g-1").
		Return(gigstatus.Ranked{}, service.NewBusinessError("GIG_EXPIRED", "гиг снят с публикации",
			service.ToDetail("gig_id", "g-1")))

	w := serve(t, mockService, httptest.NewRequest(http.MethodGet, "/gigs/g-1", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "GIG_EXPIRED", response["error"])
	assert.Equal(t, "гиг снят с публикации", response["message"])
	assert.Equal(t, map[string]any{"gig_id": "g-1"}, response["details"])
	mockService.AssertExpectations(t)
}
