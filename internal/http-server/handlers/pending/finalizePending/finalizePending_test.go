package finalizePending

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyPlanner/internal/http-server/handlers/pending/finalizePending/mocks"
	"studyPlanner/internal/lib/logger/handlers/slogdiscard"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinalizePendingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	room := "Library 2F"

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.Finalizer)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Finalized",
			requestBody: `{"user_id":"alice"}`,
			mockSetup: func(m *mocks.Finalizer) {
				m.On("Finalize", mock.Anything, int64(3), "alice").Return(&models.FinalizeResult{
					Outcome: models.OutcomeFinalized,
					Event: &models.FinalizedEvent{
						ID: 20, EventCreatorID: "alice", Title: "Review", Location: &room,
						StartTime: 5000, EndTime: 6000, Type: models.EventTypeCustom,
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp Response
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, models.OutcomeFinalized, resp.Outcome)
				require.NotNil(t, resp.Event)
				assert.Equal(t, int64(20), resp.Event.ID)
				assert.Equal(t, room, *resp.Event.Location)
			},
		},
		{
			name:        "Expired without winner",
			requestBody: `{"user_id":"alice"}`,
			mockSetup: func(m *mocks.Finalizer) {
				m.On("Finalize", mock.Anything, int64(3), "alice").
					Return(&models.FinalizeResult{Outcome: models.OutcomeExpiredNoWinner}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","outcome":"EXPIRED_NO_WINNER"}`,
		},
		{
			name:        "Already finalized",
			requestBody: `{"user_id":"alice"}`,
			mockSetup: func(m *mocks.Finalizer) {
				m.On("Finalize", mock.Anything, int64(3), "alice").Return(nil, storage.ErrAlreadyFinalized)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"event is already finalized"}`,
		},
		{
			name:        "Not the creator",
			requestBody: `{"user_id":"bob"}`,
			mockSetup: func(m *mocks.Finalizer) {
				m.On("Finalize", mock.Anything, int64(3), "bob").Return(nil, storage.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"action is not allowed for this user"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `nope`,
			mockSetup:      func(m *mocks.Finalizer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			finalizer := mocks.NewFinalizer(t)
			tc.mockSetup(finalizer)

			router := chi.NewRouter()
			router.Post("/pending-events/{id}/finalize", New(logger, finalizer))

			req, err := http.NewRequest(http.MethodPost, "/pending-events/3/finalize", bytes.NewBufferString(tc.requestBody))
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
