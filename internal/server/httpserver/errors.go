package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/toomanytabs/internal/common"
	"github.com/dmitrijs2005/toomanytabs/internal/logging"
)

// statusFor maps an error kind to the response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// formError carries a message that is safe to show to the client.
type formError struct {
	msg string
}

func (e *formError) Error() string { return e.msg }

func (e *formError) Unwrap() error { return common.ErrInvalidInput }

func publicMessage(err error, status int) string {
	var fe *formError
	if errors.As(err, &fe) {
		return "invalid request: " + fe.msg
	}
	switch status {
	case http.StatusNotFound:
		return "entry not found"
	case http.StatusBadRequest:
		return "invalid request"
	default:
		return "internal server error"
	}
}

// writeError logs err and writes a plain text response. Driver details
// stay in the log.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := logging.FromContext(r.Context(), h.st.Logger)
	if status >= http.StatusInternalServerError {
		log.Error(r.Context(), "request failed", "status", status, "error", err)
	} else {
		log.Info(r.Context(), "request rejected", "status", status, "error", err)
	}
	http.Error(w, publicMessage(err, status), status)
}
