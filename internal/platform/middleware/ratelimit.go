package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gimm/internal/platform/metrics"
	"gimm/internal/platform/ratelimit"
	dErrors "gimm/pkg/domain-errors"
	"gimm/pkg/platform/httputil"
	"gimm/pkg/requestcontext"
)

// Limiter decides whether a keyed request may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (ratelimit.Result, error)
}

// RateLimit allows at most limit requests per client IP within window on the
// wrapped routes. A limit of zero disables limiting. Limiter failures let the
// request through.
func RateLimit(name string, limiter Limiter, limit int, window time.Duration, logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			res, err := limiter.Allow(ctx, name+":"+ip, limit, window)
			if err != nil {
				logger.ErrorContext(ctx, "rate limit check failed",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				m.IncrementRateLimited(name)
				logger.WarnContext(ctx, "rate limit exceeded",
					"limiter", name,
					"client_ip", ip,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfter))
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests, please try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
