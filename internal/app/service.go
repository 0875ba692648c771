package app

import (
	"context"
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"storefront-catalog/internal/adapters"
	"storefront-catalog/internal/core"
	"storefront-catalog/internal/metrics"
	"storefront-catalog/internal/ports"
	"storefront-catalog/internal/types"
)

// Service owns one resolver and the sources behind it. Route handlers and
// commands share a Service instead of a package-level resolver.
type Service struct {
	Resolver *core.ProductResolver
	Metrics  *metrics.Registry
	Sources  []ports.CatalogSourcePort
	closers  []func() error
}

func NewService(ctx context.Context, cfg Config) (*Service, error) {
	set, err := adapters.LoadCatalogSet(adapters.CatalogFS(cfg.CatalogDir))
	if err != nil {
		return nil, err
	}
	catalogs := CatalogsFromSet(set)

	svc := &Service{Metrics: metrics.NewRegistry()}
	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		database, err := adapters.OpenDatabaseCatalog(dsn, cfg.DatabaseTimeout)
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, database.Close)
		if cfg.MigrateDatabase {
			if err := database.Migrate(ctx); err != nil {
				_ = svc.Close()
				return nil, err
			}
		}
		catalogs.Database = database
	}

	resolver, err := core.NewProductResolver(core.NewDefaultAliasTable(), catalogs, core.WithMetrics(svc.Metrics))
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	svc.Resolver = resolver
	svc.Sources = catalogs.ListOrder()
	log.Ctx(ctx).Debug().
		Int("sources", len(svc.Sources)).
		Int("probe_steps", len(resolver.Steps())).
		Bool("database", catalogs.Database != nil).
		Msg("catalog service ready")
	return svc, nil
}

// NewServiceWith builds a Service over caller-provided sources.
func NewServiceWith(aliases *core.AliasTable, catalogs core.Catalogs) (*Service, error) {
	registry := metrics.NewRegistry()
	resolver, err := core.NewProductResolver(aliases, catalogs, core.WithMetrics(registry))
	if err != nil {
		return nil, err
	}
	return &Service{
		Resolver: resolver,
		Metrics:  registry,
		Sources:  catalogs.ListOrder(),
	}, nil
}

// CatalogsFromSet maps loaded catalog files onto resolver slots.
func CatalogsFromSet(set adapters.CatalogSet) core.Catalogs {
	return core.Catalogs{
		Static:           set.Source(types.SourceStatic),
		Makeup:           set.Source(types.SourceMakeup),
		Categories:       set.Source(types.SourceCategories),
		MegaHair:         set.Source(types.SourceMegaHair),
		HairDye:          set.Source(types.SourceHairDye),
		NailPolish:       set.Source(types.SourceNailPolish),
		PerfumeWepink:    set.Source(types.SourcePerfumeWepink),
		PerfumeBoticario: set.Source(types.SourcePerfumeBoticario),
		PerfumeLegacy:    set.Source(types.SourcePerfumeLegacy),
		Straightening:    set.Source(types.SourceStraightening),
	}
}

func (s *Service) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	if err := errors.Join(errs...); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close catalog sources").
			WithCause(err)
	}
	return nil
}
