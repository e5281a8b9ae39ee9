package getEventInfo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyPlanner/internal/http-server/handlers/event/getEventInfo/mocks"
	"studyPlanner/internal/lib/logger/handlers/slogdiscard"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	details := &models.FinalizedEventDetails{
		Event: models.FinalizedEvent{
			ID:             1,
			EventCreatorID: "alice",
			Title:          "Exam prep",
			StartTime:      5000,
			EndTime:        9000,
			Type:           models.EventTypeCustom,
		},
		Participants: []models.Participant{
			{EventID: 1, UserID: "alice", JoinedAt: 10},
			{EventID: 1, UserID: "bob", JoinedAt: 10},
		},
	}

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:    "Success",
			eventID: "1",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetFinalizedEvent", mock.Anything, int64(1)).Return(details, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp EventInfoResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				require.NotNil(t, resp.Event)
				assert.Equal(t, "Exam prep", resp.Event.Title)
				assert.Nil(t, resp.Event.Location)
				require.Len(t, resp.Participants, 2)
				assert.Equal(t, "bob", resp.Participants[1].UserID)
			},
		},
		{
			name:    "Event not found",
			eventID: "999",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetFinalizedEvent", mock.Anything, int64(999)).Return(nil, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:           "Invalid event ID format",
			eventID:        "invalid",
			mockSetup:      func(m *mocks.EventGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:    "Database error",
			eventID: "1",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetFinalizedEvent", mock.Anything, int64(1)).Return(nil, errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get event information"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewEventGetter(t)
			tc.mockSetup(getter)

			router := chi.NewRouter()
			router.Get("/events/{id}", New(logger, getter))

			req, err := http.NewRequest(http.MethodGet, "/events/"+tc.eventID, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestHandlerWithChiContext(t *testing.T) {
	t.Parallel()

	getter := mocks.NewEventGetter(t)
	handler := New(slogdiscard.NewDiscardLogger(), getter)

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "123")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	getter.On("GetFinalizedEvent", mock.Anything, int64(123)).Return(&models.FinalizedEventDetails{
		Event: models.FinalizedEvent{ID: 123},
	}, nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
