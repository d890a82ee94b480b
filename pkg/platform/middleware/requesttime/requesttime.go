// Package requesttime stamps every request with one "now" and the request id,
// so all timestamps written while serving it agree.
package requesttime

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"kabal/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request. When chi's
// RequestID middleware ran first, its id is carried into requestcontext too.
func Middleware(next http.Handler) http.Handler {
	return middlewareWithClock(time.Now)(next)
}

func middlewareWithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now())
			if reqID := middleware.GetReqID(ctx); reqID != "" {
				ctx = requestcontext.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
