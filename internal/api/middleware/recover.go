package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasksum-api/internal/api/shared"
	"github.com/phrazzld/tasksum-api/internal/platform/logger"
	"github.com/phrazzld/tasksum-api/internal/redact"
)

// InternalErrorMessage is the only text a client sees for a panic or an
// unmapped failure.
const InternalErrorMessage = "An unexpected error occurred"

// Recoverer turns a handler panic into a JSON 500 response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// ALLOW-PANIC: net/http relies on this sentinel to abort the response
				panic(rec)
			}

			logger.FromContextOrDefault(r.Context(), slog.Default()).Error("panic recovered",
				slog.String("panic", redact.String(fmt.Sprint(rec))),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))

			shared.RespondWithError(w, r, http.StatusInternalServerError, InternalErrorMessage)
		}()

		next.ServeHTTP(w, r)
	})
}
