package leave

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

// Request removes TargetUserID, or the caller when it is empty. Removing
// someone else is reserved to the event creator.
type Request struct {
	UserID       string `json:"user_id" validate:"required"`
	TargetUserID string `json:"target_user_id,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Leaver
type Leaver interface {
	Leave(ctx context.Context, eventID int64, actorID, targetID string) error
}

func New(log *slog.Logger, leaver Leaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.participation.leave.New"

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

		if err = render.DecodeJSON(r.Body, &req); err != nil {
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

		target := req.TargetUserID
		if target == "" {
			target = req.UserID
		}

		if err = leaver.Leave(r.Context(), eventID, req.UserID, target); err != nil {
			log.Error("failed to leave pending event", sl.Err(err))
			status, resp := response.FromError(err, "failed to leave event")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("participant removed", slog.String("user_id", req.UserID), slog.String("target_user_id", target))

		render.JSON(w, r, response.OK())
	}
}
