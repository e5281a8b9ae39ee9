package joinEvent

import (
	"context"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/request"
	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	UserID string `json:"user_id" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventJoiner
type EventJoiner interface {
	JoinFinalized(ctx context.Context, id int64, userID string) error
}

// New adds the caller to a finalized event's attendees. Banned users get 409.
func New(log *slog.Logger, attendance EventJoiner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.joinEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := request.ID(r, "id", "event id")
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req Request

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Validation(err))
			return
		}

		if err = attendance.JoinFinalized(r.Context(), eventID, req.UserID); err != nil {
			log.Error("failed to join event", sl.Err(err))
			status, resp := response.FromError(err, "failed to join event")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("user joined event", slog.String("user_id", req.UserID))

		render.JSON(w, r, response.OK())
	}
}
