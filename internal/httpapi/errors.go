package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tinoosan/volley/internal/bank"
	"github.com/tinoosan/volley/internal/errs"
)

// writeText writes msg verbatim as a plain-text body.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func badRequest(w http.ResponseWriter, msg string) { writeText(w, http.StatusBadRequest, msg) }

// writeViolations answers 400 with one line per failed account number constraint.
func writeViolations(w http.ResponseWriter, vs []bank.Violation) {
	var b strings.Builder
	for _, v := range vs {
		b.WriteString("Account number ")
		b.WriteString(v.Message)
		b.WriteByte('\n')
	}
	badRequest(w, b.String())
}

// statusFor maps a domain failure kind to its HTTP status. Unknown errors map to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrDuplicate), errors.Is(err, errs.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError is the single mapping step from store/service failures to responses.
// Mapped failures carry their message as the body; anything else is logged and hidden.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("unmapped error", "req_id", reqID(r), "path", r.URL.Path, "err", err)
		writeText(w, status, "internal error")
		return
	}
	s.log.Debug("request rejected", "req_id", reqID(r), "status", status, "err", err.Error())
	writeText(w, status, err.Error())
}
