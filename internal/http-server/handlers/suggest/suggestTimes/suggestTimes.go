package suggestTimes

import (
	"context"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"
	"studyPlanner/internal/planner"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request asks for the free time of UserIDs inside Window. ExistingTimes
// adds busy intervals the server does not know about, such as imported
// calendars.
type Request struct {
	UserIDs       []string          `json:"user_ids"`
	ExistingTimes []models.Interval `json:"existing_times"`
	Window        models.Interval   `json:"window"`
	MinDuration   *int64            `json:"min_duration" validate:"omitempty,gte=0"`
}

type Response struct {
	response.Response
	SuggestedTimes []models.Interval `json:"suggested_times"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TimeSuggester
type TimeSuggester interface {
	SuggestTimes(ctx context.Context, req planner.SuggestRequest) ([]models.Interval, error)
}

func New(log *slog.Logger, suggester TimeSuggester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suggest.suggestTimes.New"

		log := log.With(slog.String("op", op))

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Validation(err))
			return
		}

		free, err := suggester.SuggestTimes(r.Context(), planner.SuggestRequest{
			UserIDs:     req.UserIDs,
			Busy:        req.ExistingTimes,
			Window:      req.Window,
			MinDuration: req.MinDuration,
		})
		if err != nil {
			log.Error("failed to suggest times", sl.Err(err))
			status, resp := response.FromError(err, "failed to suggest times")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Debug("suggested times computed",
			slog.Int("users", len(req.UserIDs)),
			slog.Int("busy", len(req.ExistingTimes)),
			slog.Int("free", len(free)),
		)

		render.JSON(w, r, Response{
			Response:       response.OK(),
			SuggestedTimes: free,
		})
	}
}
