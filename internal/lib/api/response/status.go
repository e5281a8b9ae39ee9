package response

import (
	"errors"
	"net/http"

	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{storage.ErrEventNotFound, http.StatusNotFound},
	{storage.ErrOptionNotFound, http.StatusNotFound},
	{storage.ErrForbidden, http.StatusForbidden},
	{storage.ErrNotParticipant, http.StatusForbidden},
	{storage.ErrCapacityExceeded, http.StatusConflict},
	{storage.ErrBanned, http.StatusConflict},
	{storage.ErrAlreadyFinalized, http.StatusConflict},
}

// FromError maps an error returned by the planner to an HTTP status and the
// response shown to the client. Unknown errors become 500 with fallback as
// the message, so driver details never leak.
func FromError(err error, fallback string) (int, Response) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, Error(vErr.Error())
	}

	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status, Error(s.err.Error())
		}
	}

	return http.StatusInternalServerError, Error(fallback)
}
