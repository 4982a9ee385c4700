package observability

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the citadel-bfa logger. level is one of debug, info,
// warn or error; anything else means info. debug logs to a colorized
// console, the rest as JSON.
func NewLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if lvl == zapcore.DebugLevel {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger.With(zap.String("service", "citadel-bfa"))
}

type accessKey struct{}

// accessEntry collects facts learned further down the chain, after the
// access log middleware has already passed the request on.
type accessEntry struct {
	mu     sync.Mutex
	userID string
}

// TagUser records the session user on the request's access log line.
// It is a no-op outside AccessLog.
func TagUser(ctx context.Context, userID string) {
	e, ok := ctx.Value(accessKey{}).(*accessEntry)
	if !ok {
		return
	}
	e.mu.Lock()
	e.userID = userID
	e.mu.Unlock()
}

func (e *accessEntry) user() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.userID
}

// quietPaths are polled by health checks and scrapers; they log at debug.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
	"/ping":    true,
}

// AccessLog writes one line per request: the chi route pattern, the
// session user when SessionMiddleware tagged one, and the outcome. 5xx
// log at error and 4xx at warn.
func AccessLog(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := &accessEntry{}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("route", routeOf(r)),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("latency", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				}
				if id := entry.user(); id != "" {
					fields = append(fields, zap.String("user_id", id))
				}

				switch {
				case status >= 500:
					logger.Error("request", fields...)
				case status >= 400:
					logger.Warn("request", append(fields, zap.String("remote_addr", r.RemoteAddr))...)
				case quietPaths[r.URL.Path]:
					logger.Debug("request", fields...)
				default:
					logger.Info("request", fields...)
				}
			}()

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), accessKey{}, entry)))
		})
	}
}

// routeOf prefers the matched pattern so ids stay out of the route field.
func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" && !strings.HasSuffix(p, "/*") {
			return p
		}
	}
	return r.URL.Path
}

// TracingMiddleware extracts trace context from incoming requests.
func TracingMiddleware(next http.Handler) http.Handler {
	propagator := otel.GetTextMapPropagator()
	if propagator == nil {
		propagator = propagation.TraceContext{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
