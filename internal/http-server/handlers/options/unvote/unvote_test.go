package unvote

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyPlanner/internal/http-server/handlers/options/unvote/mocks"
	"studyPlanner/internal/lib/logger/handlers/slogdiscard"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnvoteHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.Unvoter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: `{"user_id":"bob"}`,
			mockSetup: func(m *mocks.Unvoter) {
				m.On("Unvote", mock.Anything, int64(2), models.OptionTime, int64(8), "bob").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:        "Event missing",
			requestBody: `{"user_id":"bob"}`,
			mockSetup: func(m *mocks.Unvoter) {
				m.On("Unvote", mock.Anything, int64(2), models.OptionTime, int64(8), "bob").Return(storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.Unvoter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			unvoter := mocks.NewUnvoter(t)
			tc.mockSetup(unvoter)

			router := chi.NewRouter()
			router.Post("/pending-events/{id}/options/{kind}/{optionId}/unvote", New(logger, unvoter))

			req, err := http.NewRequest(http.MethodPost, "/pending-events/2/options/time/8/unvote", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
