package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	"bikeshare/config"
	"bikeshare/queryhandlers"
	"bikeshare/server/handler"
)

// NewRouter returns the router of the API. Every /v1 route is rate limited per client IP
func NewRouter(store handler.Store, serverConfig config.ServerConfig, viewsOptions queryhandlers.Options, version string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	apiHandler := handler.NewAPIHandler(store, version)
	viewHandler := handler.NewViewHandler(store, viewsOptions)

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimitByIP(serverConfig.RateLimit, serverConfig.RateWindow))

		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", apiHandler.HealthCheck)
			r.Post("/reload", apiHandler.Reload)
		})

		r.Get("/session", apiHandler.SessionInfo)
		r.Get("/trips", apiHandler.Trips)

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", apiHandler.ListTables)
			r.Get("/{name}", apiHandler.GetTable)
		})

		r.Route("/views", func(r chi.Router) {
			r.Get("/", viewHandler.ListViews)
			r.Get("/{kind}", viewHandler.GetView)
		})
	})

	return r
}

func rateLimitByIP(requestLimit int, windowLength time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestLimit,
		windowLength,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			handler.WriteJSON(w, http.StatusTooManyRequests, handler.Problem{
				Status: http.StatusTooManyRequests,
				Title:  http.StatusText(http.StatusTooManyRequests),
				Detail: "rate limit exceeded, try again later",
			})
		}),
	)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"request_id": chimiddleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Debug(getLogMessage("requestLogger", "request served", nil))
	})
}
