package createEvent

import (
	"context"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// EventRequest creates a committed event that did not go through voting:
// class schedule entries and imported calendar events.
type EventRequest struct {
	UserID      string  `json:"user_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Location    *string `json:"location"`
	StartTime   int64   `json:"start_time" validate:"required"`
	EndTime     int64   `json:"end_time" validate:"required,gtfield=StartTime"`
	Type        string  `json:"type" validate:"required,oneof=class google"`
}

type EventResponse struct {
	response.Response
	EventID int64 `json:"event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateFinalizedEvent(ctx context.Context, e models.FinalizedEvent) (int64, error)
}

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Validation(err))

			return
		}

		eventID, err := creator.CreateFinalizedEvent(r.Context(), models.FinalizedEvent{
			EventCreatorID: req.UserID,
			Title:          req.Title,
			Description:    req.Description,
			Location:       req.Location,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Type:           models.EventType(req.Type),
		})
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			status, resp := response.FromError(err, "failed to add event")
			render.Status(r, status)
			render.JSON(w, r, resp)

			return
		}

		log.Info("event added", slog.Int64("id", eventID))

		responseOK(w, r, eventID)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID int64) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventID:  eventID,
	})
}
