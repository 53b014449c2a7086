package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AutomatedMarketer/flodesk/internal/api"
	apimiddleware "github.com/AutomatedMarketer/flodesk/internal/api/middleware"
	"github.com/AutomatedMarketer/flodesk/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(apimiddleware.Metrics)
	r.Use(apimiddleware.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return app.allowOrigin(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	subscriberHandler := api.NewSubscriberHandler(app.gateway, app.logger)
	segmentHandler := api.NewSegmentHandler(app.gateway, app.segments, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Use(apimiddleware.RequireAPIKey)

		// Subscriber endpoints
		r.Get("/subscribers", subscriberHandler.List)
		r.Post("/subscribers", subscriberHandler.CreateOrUpdate)
		r.Get("/subscribers/{email}", subscriberHandler.Get)
		r.Post("/subscribers/{email}/segments", subscriberHandler.AddToSegments)
		r.Delete("/subscribers/{email}/segments", subscriberHandler.RemoveFromSegment)
		r.Patch("/subscribers/{email}/segments", subscriberHandler.UpdateSegments)
		r.Post("/subscribers/{email}/unsubscribe", subscriberHandler.Unsubscribe)

		// Segment and custom field endpoints
		r.Get("/segments", segmentHandler.Get)
		r.Get("/custom-fields", segmentHandler.GetCustomFields)
	})

	// Liveness endpoints (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
			"success":   true,
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithSuccess(w, r, map[string]interface{}{
			"message": "Flodesk proxy is running",
		})
	})

	// Prometheus exposition
	r.Handle("/metrics", promhttp.Handler())

	// Everything unmatched gets the JSON 404 envelope, including wrong
	// methods on known paths.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Endpoint not found",
			"path":    r.URL.Path,
		})
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
