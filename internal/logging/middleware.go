package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Middleware attaches a fresh LogData to every request and writes one summary line once the
// handler returns. Responses with a 5xx status are logged at error level.
func Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logData := NewLogData(log)
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req.WithContext(WithLogData(req.Context(), logData)))

			loggingName := routeName(req)
			logData.AddData("method", req.Method)
			logData.AddData("path", req.URL.Path)
			logData.AddData("status", ww.Status())
			logData.AddData("duration", time.Since(start).Milliseconds())
			if reqID := middleware.GetReqID(req.Context()); reqID != "" {
				logData.AddData("requestID", reqID)
			}

			entry := logData.Log()
			if ww.Status() >= http.StatusInternalServerError {
				entry.Errorf("Handler.%v.Error", loggingName)
				return
			}
			entry.Infof("Handler.%v.Complete", loggingName)
		})
	}
}

// routeName prefers the matched chi pattern so log lines group by route, not by raw path.
func routeName(req *http.Request) string {
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return req.Method + " " + pattern
		}
	}
	return req.Method + " " + req.URL.Path
}
