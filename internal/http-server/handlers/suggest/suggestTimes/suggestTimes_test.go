package suggestTimes

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyPlanner/internal/http-server/handlers/suggest/suggestTimes/mocks"
	"studyPlanner/internal/lib/logger/handlers/slogdiscard"
	"studyPlanner/internal/models"
	"studyPlanner/internal/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSuggestTimesHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	minDuration := int64(900000)

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.TimeSuggester)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			requestBody: `{"user_ids":["alice","bob"],"existing_times":[{"start":8,"end":10},{"start":12,"end":14}],
				"window":{"start":6,"end":16}}`,
			mockSetup: func(m *mocks.TimeSuggester) {
				m.On("SuggestTimes", mock.Anything, planner.SuggestRequest{
					UserIDs: []string{"alice", "bob"},
					Busy:    []models.Interval{{Start: 8, End: 10}, {Start: 12, End: 14}},
					Window:  models.Interval{Start: 6, End: 16},
				}).Return([]models.Interval{{Start: 6, End: 8}, {Start: 10, End: 12}, {Start: 14, End: 16}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","suggested_times":[{"start":6,"end":8},{"start":10,"end":12},
				{"start":14,"end":16}]}`,
		},
		{
			name:        "Minimum duration override",
			requestBody: `{"window":{"start":0,"end":3600000},"min_duration":900000}`,
			mockSetup: func(m *mocks.TimeSuggester) {
				m.On("SuggestTimes", mock.Anything, planner.SuggestRequest{
					Window:      models.Interval{Start: 0, End: 3600000},
					MinDuration: &minDuration,
				}).Return([]models.Interval{{Start: 0, End: 3600000}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","suggested_times":[{"start":0,"end":3600000}]}`,
		},
		{
			name:        "Inverted window",
			requestBody: `{"window":{"start":16,"end":6}}`,
			mockSetup: func(m *mocks.TimeSuggester) {
				m.On("SuggestTimes", mock.Anything, mock.Anything).
					Return(nil, models.NewValidationError("window", "end must be after start"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid window: end must be after start"}`,
		},
		{
			name:           "Negative minimum",
			requestBody:    `{"window":{"start":0,"end":10},"min_duration":-1}`,
			mockSetup:      func(m *mocks.TimeSuggester) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field MinDuration is not valid"}`,
		},
		{
			name:        "Storage failure",
			requestBody: `{"user_ids":["alice"],"window":{"start":0,"end":10}}`,
			mockSetup: func(m *mocks.TimeSuggester) {
				m.On("SuggestTimes", mock.Anything, mock.Anything).Return(nil, errors.New("db"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to suggest times"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			suggester := mocks.NewTimeSuggester(t)
			tc.mockSetup(suggester)

			req, err := http.NewRequest(http.MethodPost, "/suggestions", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			New(logger, suggester).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
