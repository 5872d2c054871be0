package observability

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"eatlocal.org/eatlocal-web/internal/middleware"
)

// RequestLogger attaches a request-scoped logger to the context and emits one
// structured line per completed request.
func RequestLogger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = noopLogger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			requestID := chimw.GetReqID(ctx)
			if requestID != "" {
				ctx = middleware.WithRequestID(ctx, requestID)
			}
			logger := base.With(
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			if ip := remoteIP(r); ip != "" {
				logger = logger.With(zap.String("remote_ip", ip))
			}
			r = r.WithContext(WithLogger(ctx, logger))

			rec := middleware.NewResponseRecorder(w)
			next.ServeHTTP(rec, r)

			fields := []zap.Field{
				zap.String("route", routePattern(r)),
				zap.Int("status", rec.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes", rec.BytesWritten()),
				zap.Bool("htmx", middleware.IsHTMX(r.Context())),
			}
			switch status := rec.Status(); {
			case status >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("request completed", fields...)
			default:
				logger.Info("request completed", fields...)
			}
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func remoteIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
