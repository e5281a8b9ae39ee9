package getUserEvents

import (
	"context"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type EventsResponse struct {
	response.Response
	Events []models.FinalizedEvent `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	ListUserEvents(ctx context.Context, userID string) ([]models.FinalizedEvent, error)
}

// New is the calendar feed of one user: every finalized event they attend,
// ordered by start time.
func New(log *slog.Logger, eventsGetter EventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getUserEvents.New"

		log := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "userId")
		if userID == "" {
			log.Error("user id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		events, err := eventsGetter.ListUserEvents(r.Context(), userID)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			status, resp := response.FromError(err, "failed to get events")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("events retrieved successfully", slog.String("user_id", userID), slog.Int("count", len(events)))

		responseOK(w, r, events)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.FinalizedEvent) {
	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   events,
	})
}
