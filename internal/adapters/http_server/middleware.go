package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"travel_planner/internal/adapters/observability"
)

// Response headers set by the itinerary handler; Observe copies them into the
// request log line.
const (
	HeaderPlanID       = "X-Plan-Id"
	HeaderPlanCurrency = "X-Plan-Currency"
)

const timeoutBody = `{"type":"about:blank","title":"Timeout","status":503,"detail":"itinerary generation took too long"}`

// Timeout bounds a request. Generation is the slow step, so the limit is
// generous and the body is a problem document like every other error.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, timeoutBody) }
}

// routeOf returns the matched chi pattern. Unmatched paths share one label so
// scanners cannot grow the metric set.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Observe records request metrics and writes one log line per request,
// including the plan id and currency when the handler produced a plan.
func Observe(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route, dur := routeOf(r), time.Since(start)
			observability.ObserveHTTP(route, r.Method, status, dur)

			ev := l.Info()
			if status >= http.StatusInternalServerError {
				ev = l.Warn()
			}
			if id := ww.Header().Get(HeaderPlanID); id != "" {
				ev = ev.Str("plan_id", id)
			}
			if c := ww.Header().Get(HeaderPlanCurrency); c != "" {
				ev = ev.Str("currency", c)
			}
			ev.Str("request_id", chimw.GetReqID(r.Context())).
				Str("route", route).
				Str("method", r.Method).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", dur).
				Str("remote", remoteHost(r)).
				Msg("http_request")
		})
	}
}

// remoteHost strips the port; RealIP has already applied forwarding headers.
func remoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
