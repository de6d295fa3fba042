package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/volley/internal/bank"
)

type ctxKey string

const ctxKeyAccountNumber ctxKey = "validatedAccountNumber"

func reqID(r *http.Request) string { return chimw.GetReqID(r.Context()) }

// requestLogger logs basic request info at INFO.
func requestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			id := reqID(r)
			l.Info("request started", "req_id", id, "method", r.Method, "path", r.URL.Path)

			next.ServeHTTP(ww, r)

			l.Info("request complete",
				"req_id", id,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		})
	}
}

// recoverer logs panics as ERROR and returns 500.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.Error("panic", "req_id", reqID(r), "err", rec, "stack", string(debug.Stack()))
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// validateAccountNumber checks the {accountNumber} path parameter against the
// account number constraints and stores it in the request context for the handler.
func (s *Server) validateAccountNumber() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := chi.URLParam(r, "accountNumber")
			if vs := bank.ValidateAccountNumber(n); len(vs) > 0 {
				s.log.Debug("account number rejected", "req_id", reqID(r), "account_number", n, "violations", len(vs))
				writeViolations(w, vs)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyAccountNumber, n)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
