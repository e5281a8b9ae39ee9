package request

import (
	"fmt"
	"net/http"
	"strconv"

	"studyPlanner/internal/models"

	"github.com/go-chi/chi/v5"
)

// ID reads a numeric URL parameter. label names it in the returned error,
// which is meant to be shown to the client as-is.
func ID(r *http.Request, param, label string) (int64, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", label)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format", label)
	}

	return id, nil
}

// Kind reads the {kind} URL parameter of option routes.
func Kind(r *http.Request) (models.OptionKind, error) {
	kind := models.OptionKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		return "", fmt.Errorf("option kind must be one of [%s %s]", models.OptionTime, models.OptionLocation)
	}

	return kind, nil
}
