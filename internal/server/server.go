// Package server exposes operational endpoints of the notos daemon.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
	"github.com/tomasen/realip"

	"github.com/Decentr-net/notos/internal/health"
)

var log = logrus.WithField("layer", "api").WithField("package", "server")

// SetupRouter setups handlers to chi router.
func SetupRouter(r chi.Router, timeout time.Duration, p ...health.Pinger) {
	r.Use(
		middleware.RequestID,
		loggerMiddleware,
		middleware.StripSlashes,
		middleware.Recoverer,
		middleware.Timeout(timeout),
	)

	r.Get("/health", health.Handler(timeout, p...))
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(health.GetVersion())); err != nil {
			log.WithError(err).Error("failed to write response")
		}
	})
}

func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		l := log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"ip":         realip.FromRequest(r),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		})

		if ww.Status() >= http.StatusInternalServerError {
			l.Warn("request failed")
			return
		}
		l.Debug("request served")
	})
}
