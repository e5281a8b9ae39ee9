package finalizePending

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

// Response carries the outcome. EXPIRED_NO_WINNER is a successful call
// without an event.
type Response struct {
	response.Response
	*models.FinalizeResult
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Finalizer
type Finalizer interface {
	Finalize(ctx context.Context, id int64, userID string) (*models.FinalizeResult, error)
}

func New(log *slog.Logger, finalizer Finalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pending.finalizePending.New"

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

		res, err := finalizer.Finalize(r.Context(), eventID, req.UserID)
		if err != nil {
			log.Error("failed to finalize pending event", sl.Err(err))
			status, resp := response.FromError(err, "failed to finalize pending event")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("pending event finalized", slog.String("outcome", string(res.Outcome)))

		responseOK(w, r, res)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, res *models.FinalizeResult) {
	render.JSON(w, r, Response{
		Response:       response.OK(),
		FinalizeResult: res,
	})
}
