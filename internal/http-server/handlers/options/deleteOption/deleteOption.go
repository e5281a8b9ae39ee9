package deleteOption

import (
	"context"
	"log/slog"
	"net/http"

	"studyPlanner/internal/lib/api/request"
	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	UserID string `json:"user_id" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OptionDeleter
type OptionDeleter interface {
	DeleteOption(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) error
}

// New removes an option together with its votes. Only the option's author
// or the event creator may do so.
func New(log *slog.Logger, deleter OptionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.options.deleteOption.New"

		log := log.With(slog.String("op", op))

		eventID, err := request.ID(r, "id", "event id")
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		kind, err := request.Kind(r)
		if err != nil {
			log.Error("bad option kind", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		optionID, err := request.ID(r, "optionId", "option id")
		if err != nil {
			log.Error("bad option id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(
			slog.Int64("event_id", eventID),
			slog.String("kind", string(kind)),
			slog.Int64("option_id", optionID),
		)

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

		if err = deleter.DeleteOption(r.Context(), eventID, kind, optionID, req.UserID); err != nil {
			log.Error("failed to delete option", sl.Err(err))
			status, resp := response.FromError(err, "failed to delete option")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("option deleted", slog.String("user_id", req.UserID))

		render.JSON(w, r, response.OK())
	}
}
