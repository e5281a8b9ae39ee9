package getEventInfo

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

type EventInfoResponse struct {
	response.Response
	Event        *models.FinalizedEvent `json:"event"`
	Participants []models.Participant   `json:"participants"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetFinalizedEvent(ctx context.Context, id int64) (*models.FinalizedEventDetails, error)
}

func New(log *slog.Logger, info EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventInfo.New"

		log := log.With(slog.String("op", op))

		eventID, err := request.ID(r, "id", "event id")
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		details, err := info.GetFinalizedEvent(r.Context(), eventID)
		if err != nil {
			log.Error("failed to get event information", sl.Err(err))
			status, resp := response.FromError(err, "failed to get event information")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("event info successfully received")

		responseOK(w, r, details)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, details *models.FinalizedEventDetails) {
	render.JSON(w, r, EventInfoResponse{
		Response:     response.OK(),
		Event:        &details.Event,
		Participants: details.Participants,
	})
}
