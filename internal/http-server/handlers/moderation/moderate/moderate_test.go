package moderate

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyPlanner/internal/http-server/handlers/moderation/moderate/mocks"
	"studyPlanner/internal/lib/logger/handlers/slogdiscard"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestModerateHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		scope          models.Scope
		url            string
		requestBody    string
		mockSetup      func(m *mocks.Moderator)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Ban on pending event",
			scope:       models.ScopePending,
			url:         "/pending-events/1/moderation/ban",
			requestBody: `{"user_id":"alice","target_user_id":"mallory"}`,
			mockSetup: func(m *mocks.Moderator) {
				m.On("Moderate", mock.Anything, models.ScopePending, int64(1), "alice", "mallory", models.ActionBan).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:        "Mute on finalized event",
			scope:       models.ScopeFinalized,
			url:         "/events/9/moderation/mute",
			requestBody: `{"user_id":"alice","target_user_id":"bob"}`,
			mockSetup: func(m *mocks.Moderator) {
				m.On("Moderate", mock.Anything, models.ScopeFinalized, int64(9), "alice", "bob", models.ActionMute).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:        "Not the creator",
			scope:       models.ScopePending,
			url:         "/pending-events/1/moderation/unban",
			requestBody: `{"user_id":"bob","target_user_id":"mallory"}`,
			mockSetup: func(m *mocks.Moderator) {
				m.On("Moderate", mock.Anything, models.ScopePending, int64(1), "bob", "mallory", models.ActionUnban).
					Return(storage.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"action is not allowed for this user"}`,
		},
		{
			name:           "Unknown action",
			scope:          models.ScopePending,
			url:            "/pending-events/1/moderation/kick",
			requestBody:    `{"user_id":"alice","target_user_id":"bob"}`,
			mockSetup:      func(m *mocks.Moderator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"action must be one of [ban unban mute unmute]"}`,
		},
		{
			name:           "Missing target",
			scope:          models.ScopePending,
			url:            "/pending-events/1/moderation/ban",
			requestBody:    `{"user_id":"alice"}`,
			mockSetup:      func(m *mocks.Moderator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field TargetUserID is a required field"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			moderator := mocks.NewModerator(t)
			tc.mockSetup(moderator)

			handler := New(logger, moderator, tc.scope)

			router := chi.NewRouter()
			router.Post("/pending-events/{id}/moderation/{action}", handler)
			router.Post("/events/{id}/moderation/{action}", handler)

			req, err := http.NewRequest(http.MethodPost, tc.url, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
