package leaveEvent

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventLeaver
type EventLeaver interface {
	LeaveFinalized(ctx context.Context, id int64, userID string) error
}

// New removes the caller from a finalized event's attendees.
func New(log *slog.Logger, attendance EventLeaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.leaveEvent.New"

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

		if err = attendance.LeaveFinalized(r.Context(), eventID, req.UserID); err != nil {
			log.Error("failed to leave event", sl.Err(err))
			status, resp := response.FromError(err, "failed to leave event")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("user left event", slog.String("user_id", req.UserID))

		render.JSON(w, r, response.OK())
	}
}
