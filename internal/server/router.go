package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"storefront-catalog/internal/app"
)

// Router exposes the catalog service to operators and page renderers.
type Router struct {
	*mux.Router
	svc *app.Service
}

func NewRouter(svc *app.Service) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		svc:    svc,
	}
	r.Use(requestLogger)

	r.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", svc.Metrics.Handler()).Methods(http.MethodGet)

	products := r.PathPrefix("/products").Subrouter()
	products.HandleFunc("", r.listProducts).Methods(http.MethodGet)
	products.HandleFunc("/{id}", r.getProduct).Methods(http.MethodGet)

	cache := r.PathPrefix("/cache").Subrouter()
	cache.HandleFunc("", r.clearCache).Methods(http.MethodDelete)
	cache.HandleFunc("/{id}", r.clearCacheFor).Methods(http.MethodDelete)

	debug := r.PathPrefix("/debug").Subrouter()
	debug.HandleFunc("/mapping/{id}", r.getMapping).Methods(http.MethodGet)
	debug.HandleFunc("/products", r.debugProducts).Methods(http.MethodGet)

	return r
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
