package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"bus-arrival-server/server/handlers"
	"bus-arrival-server/server/middleware"
)

type Router struct {
	arrivalHandler *handlers.ArrivalHandler
	debugHandler   *handlers.DebugHandler
	rateLimiter    *middleware.RateLimiter
	logger         *slog.Logger
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes. A nil debugHandler leaves
// /debug/session unregistered.
func NewRouter(
	arrivalHandler *handlers.ArrivalHandler,
	debugHandler *handlers.DebugHandler,
	rateLimiter *middleware.RateLimiter,
	logger *slog.Logger,
	router *mux.Router) *Router {
	return &Router{
		arrivalHandler: arrivalHandler,
		debugHandler:   debugHandler,
		rateLimiter:    rateLimiter,
		logger:         logger,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(middleware.NewRequestLogging(r.logger), middleware.Gzip)

	r.router.HandleFunc("/", r.arrivalHandler.GetBoard).Methods("GET")
	// expects form stop_id={stopId}
	r.router.Handle("/arrivals", r.limited(r.arrivalHandler.SubmitQuery)).Methods("POST")
	// expects form kind={none|bus-number|bus-operator|destination-bus-stop}
	r.router.HandleFunc("/filter", r.arrivalHandler.SetFilter).Methods("POST")
	// expects form query={value}
	r.router.HandleFunc("/filter/query", r.arrivalHandler.ApplyFilterQuery).Methods("POST")
	r.router.HandleFunc("/chart", r.arrivalHandler.GetChart).Methods("GET")

	// expects ?id={stopId}&filter={kind}&q={query}
	r.router.Handle("/v1/arrivals", r.limited(r.arrivalHandler.GetArrivals)).Methods("GET")

	if r.debugHandler != nil {
		r.router.HandleFunc("/debug/session", r.debugHandler.GetSession).Methods("GET")
	}
	r.router.HandleFunc("/ping", r.arrivalHandler.Ping).Methods("GET")
}

func (r *Router) limited(h http.HandlerFunc) http.Handler {
	return r.rateLimiter.Handler(h)
}
