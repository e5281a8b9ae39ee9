package listPending

import (
	"context"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/request"
	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"

	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	PendingEvents []models.PendingEvent `json:"pending_events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PendingEventsLister
type PendingEventsLister interface {
	ListPendingEvents(ctx context.Context, groupID int64) ([]models.PendingEvent, error)
}

func New(log *slog.Logger, lister PendingEventsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pending.listPending.New"

		log := log.With(slog.String("op", op))

		groupID, err := request.ID(r, "groupId", "group id")
		if err != nil {
			log.Error("bad group id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		events, err := lister.ListPendingEvents(r.Context(), groupID)
		if err != nil {
			log.Error("failed to list pending events", sl.Err(err))
			status, resp := response.FromError(err, "failed to list pending events")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("pending events listed", slog.Int64("group_id", groupID), slog.Int("count", len(events)))

		responseOK(w, r, events)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.PendingEvent) {
	render.JSON(w, r, Response{
		Response:      response.OK(),
		PendingEvents: events,
	})
}
