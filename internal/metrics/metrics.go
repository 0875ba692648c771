package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the resolver's collectors. A nil *Registry is valid and
// records nothing, so the resolver can run without metrics.
type Registry struct {
	reg                 *prometheus.Registry
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	NotFound            prometheus.Counter
	ConsistencyWarnings prometheus.Counter
	CacheCleared        prometheus.Counter
	Resolutions         *prometheus.CounterVec
	SourceErrors        *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_resolver_cache_hits_total"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_resolver_cache_misses_total"})
	notFound := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_resolver_not_found_total"})
	warnings := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_resolver_consistency_warnings_total"})
	cleared := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_resolver_cache_entries_cleared_total"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_resolver_resolutions_total",
		Help: "Successful resolutions by the probe step that satisfied them.",
	}, []string{"step"})
	sourceErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_resolver_source_errors_total",
		Help: "Catalog source lookups that failed and were treated as absent.",
	}, []string{"source"})

	r.MustRegister(hits, misses, notFound, warnings, cleared, resolutions, sourceErrors)
	return &Registry{
		reg:                 r,
		CacheHits:           hits,
		CacheMisses:         misses,
		NotFound:            notFound,
		ConsistencyWarnings: warnings,
		CacheCleared:        cleared,
		Resolutions:         resolutions,
		SourceErrors:        sourceErrors,
	}
}

func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Registry) CacheHit() {
	if r != nil {
		r.CacheHits.Inc()
	}
}

func (r *Registry) CacheMiss() {
	if r != nil {
		r.CacheMisses.Inc()
	}
}

func (r *Registry) Miss() {
	if r != nil {
		r.NotFound.Inc()
	}
}

func (r *Registry) Resolved(step string) {
	if r != nil {
		r.Resolutions.WithLabelValues(step).Inc()
	}
}

func (r *Registry) ConsistencyWarning() {
	if r != nil {
		r.ConsistencyWarnings.Inc()
	}
}

func (r *Registry) SourceError(source string) {
	if r != nil {
		r.SourceErrors.WithLabelValues(source).Inc()
	}
}

func (r *Registry) Cleared(entries int) {
	if r != nil {
		r.CacheCleared.Add(float64(entries))
	}
}
