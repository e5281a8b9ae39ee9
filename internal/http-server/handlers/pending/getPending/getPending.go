package getPending

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
	*models.PendingEventDetails
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PendingEventGetter
type PendingEventGetter interface {
	GetPendingEvent(ctx context.Context, id int64) (*models.PendingEventDetails, error)
}

// New serves the snapshot observers seed their tallies from. Reading an
// event past its deadline finalizes it first.
func New(log *slog.Logger, getter PendingEventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pending.getPending.New"

		log := log.With(slog.String("op", op))

		eventID, err := request.ID(r, "id", "event id")
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		details, err := getter.GetPendingEvent(r.Context(), eventID)
		if err != nil {
			log.Error("failed to get pending event", sl.Err(err))
			status, resp := response.FromError(err, "failed to get pending event")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("pending event received", slog.String("state", string(details.Event.State)))

		responseOK(w, r, details)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, details *models.PendingEventDetails) {
	render.JSON(w, r, Response{
		Response:            response.OK(),
		PendingEventDetails: details,
	})
}
