package addOption

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

// Request carries either a time slot or a location, depending on the kind
// in the URL.
type Request struct {
	UserID    string `json:"user_id" validate:"required"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Location  string `json:"location"`
}

type Response struct {
	response.Response
	OptionID int64 `json:"option_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OptionAdder
type OptionAdder interface {
	AddTimeOption(ctx context.Context, eventID int64, userID string, start, end int64) (int64, error)
	AddLocationOption(ctx context.Context, eventID int64, userID, location string) (int64, error)
}

func New(log *slog.Logger, adder OptionAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.options.addOption.New"

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

		log = log.With(slog.Int64("event_id", eventID), slog.String("kind", string(kind)))

		var req Request

		if err = render.DecodeJSON(r.Body, &req); err != nil {
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

		var optionID int64
		switch kind {
		case models.OptionTime:
			optionID, err = adder.AddTimeOption(r.Context(), eventID, req.UserID, req.StartTime, req.EndTime)
		case models.OptionLocation:
			optionID, err = adder.AddLocationOption(r.Context(), eventID, req.UserID, req.Location)
		}
		if err != nil {
			log.Error("failed to add option", sl.Err(err))
			status, resp := response.FromError(err, "failed to add option")
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("option added", slog.Int64("option_id", optionID))

		responseOK(w, r, optionID)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, optionID int64) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Response: response.OK(),
		OptionID: optionID,
	})
}
