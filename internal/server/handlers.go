package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"storefront-catalog/internal/app"
)

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"sources": len(r.svc.Sources),
	})
}

func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.svc.List(req.Context()).Products)
}

func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	product, ok := r.svc.Resolver.Resolve(req.Context(), id)
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (r *Router) clearCache(w http.ResponseWriter, req *http.Request) {
	result := r.svc.ClearCache(req.Context(), app.ClearCacheRequest{})
	respondJSON(w, http.StatusOK, map[string]int{"dropped": result.Dropped})
}

func (r *Router) clearCacheFor(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	result := r.svc.ClearCache(req.Context(), app.ClearCacheRequest{ID: id})
	respondJSON(w, http.StatusOK, map[string]int{"dropped": result.Dropped})
}

func (r *Router) getMapping(w http.ResponseWriter, req *http.Request) {
	info, err := r.svc.Mapping(req.Context(), app.MappingRequest{ID: mux.Vars(req)["id"]})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// debugProducts reports on ?id=a,b or on every listed product.
func (r *Router) debugProducts(w http.ResponseWriter, req *http.Request) {
	result := r.svc.ValidateImages(req.Context(), app.ValidateImagesRequest{IDs: req.URL.Query()["id"]})
	log.Ctx(req.Context()).Debug().
		Int("products", len(result.Reports)).
		Int("invalid", result.Invalid).
		Msg("debug report served")
	respondJSON(w, http.StatusOK, map[string]any{
		"reports": result.Reports,
		"invalid": result.Invalid,
	})
}
