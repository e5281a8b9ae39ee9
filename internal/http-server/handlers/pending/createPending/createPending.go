package createPending

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

type Request struct {
	GroupID              int64  `json:"group_id" validate:"required"`
	Title                string `json:"title" validate:"required"`
	Description          string `json:"description"`
	UserID               string `json:"user_id" validate:"required"`
	PossibleStartTime    int64  `json:"possible_start_time" validate:"required"`
	PossibleEndTime      int64  `json:"possible_end_time" validate:"required,gtfield=PossibleStartTime"`
	RegistrationDeadline int64  `json:"registration_deadline" validate:"required"`
	ParticipantLimit     *int   `json:"participant_limit" validate:"omitempty,gt=0"`
}

type Response struct {
	response.Response
	PendingEventID int64 `json:"pending_event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PendingEventCreator
type PendingEventCreator interface {
	CreatePendingEvent(ctx context.Context, e models.PendingEvent) (int64, error)
}

func New(log *slog.Logger, creator PendingEventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pending.createPending.New"

		log := log.With(slog.String("op", op))

		var req Request

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

		id, err := creator.CreatePendingEvent(r.Context(), models.PendingEvent{
			GroupID:              req.GroupID,
			Title:                req.Title,
			Description:          req.Description,
			EventCreatorID:       req.UserID,
			PossibleStartTime:    req.PossibleStartTime,
			PossibleEndTime:      req.PossibleEndTime,
			RegistrationDeadline: req.RegistrationDeadline,
			ParticipantLimit:     req.ParticipantLimit,
		})
		if err != nil {
			log.Error("failed to create pending event", sl.Err(err))
			status, resp := response.FromError(err, "failed to create pending event")
			render.Status(r, status)
			render.JSON(w, r, resp)

			return
		}

		log.Info("pending event created", slog.Int64("id", id))

		responseOK(w, r, id)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, id int64) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Response:       response.OK(),
		PendingEventID: id,
	})
}
