package muteStatus

import (
	"context"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/request"
	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	UserID string `json:"user_id"`
	Muted  bool   `json:"muted"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=MuteChecker
type MuteChecker interface {
	IsMuted(ctx context.Context, scope models.Scope, eventID int64, userID string) (bool, error)
}

// New answers whether a user is muted in an event's discussion. Chat itself
// lives elsewhere and consults this before accepting messages.
func New(log *slog.Logger, checker MuteChecker, scope models.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.moderation.muteStatus.New"

		log := log.With(slog.String("op", op), slog.String("scope", string(scope)))

		eventID, err := request.ID(r, "id", "event id")
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		userID := chi.URLParam(r, "userId")
		if userID == "" {
			log.Error("user id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		muted, err := checker.IsMuted(r.Context(), scope, eventID, userID)
		if err != nil {
			log.Error("failed to check mute", sl.Err(err))
			status, resp := response.FromError(err, "failed to check mute")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			UserID:   userID,
			Muted:    muted,
		})
	}
}
