package moderate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/request"
	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	UserID       string `json:"user_id" validate:"required"`
	TargetUserID string `json:"target_user_id" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Moderator
type Moderator interface {
	Moderate(ctx context.Context, scope models.Scope, eventID int64, actorID, targetID string, action models.ModerationAction) error
}

// New serves /{id}/moderation/{action} for one scope. The same handler is
// mounted under pending and finalized events.
func New(log *slog.Logger, moderator Moderator, scope models.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.moderation.moderate.New"

		log := log.With(slog.String("op", op), slog.String("scope", string(scope)))

		eventID, err := request.ID(r, "id", "event id")
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		action := models.ModerationAction(chi.URLParam(r, "action"))
		if !action.Valid() {
			log.Error("unknown moderation action", slog.String("action", string(action)))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("action must be one of [%s %s %s %s]",
				models.ActionBan, models.ActionUnban, models.ActionMute, models.ActionUnmute)))
			return
		}

		log = log.With(slog.Int64("event_id", eventID), slog.String("action", string(action)))

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

		err = moderator.Moderate(r.Context(), scope, eventID, req.UserID, req.TargetUserID, action)
		if err != nil {
			log.Error("failed to apply moderation", sl.Err(err))
			status, resp := response.FromError(err, "failed to apply moderation")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("moderation applied", slog.String("target_user_id", req.TargetUserID))

		render.JSON(w, r, response.OK())
	}
}
