package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"storefront-catalog/internal/shared"
	"storefront-catalog/internal/types"
)

func (s *Service) Resolve(ctx context.Context, req ResolveRequest) ([]ResolveResult, error) {
	ids := shared.SplitIDs(req.IDs)
	if len(ids) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one product id is required")
	}
	results := make([]ResolveResult, 0, len(ids))
	for _, id := range ids {
		product, ok := s.Resolver.Resolve(ctx, id)
		results = append(results, ResolveResult{ID: id, Found: ok, Product: product})
	}
	return results, nil
}

func (s *Service) List(ctx context.Context) ListResult {
	return ListResult{Products: s.Resolver.AllAvailableProducts(ctx)}
}

func (s *Service) Mapping(ctx context.Context, req MappingRequest) (types.MappingInfo, error) {
	ids := shared.SplitIDs([]string{req.ID})
	if len(ids) != 1 {
		return types.MappingInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exactly one product id is required")
	}
	return s.Resolver.MappingInfo(ctx, ids[0]), nil
}

// ValidateImages runs the operator report over the requested IDs, or over
// every listed product when none are given.
func (s *Service) ValidateImages(ctx context.Context, req ValidateImagesRequest) ValidateImagesResult {
	ids := shared.SplitIDs(req.IDs)
	if len(ids) == 0 {
		for _, product := range s.Resolver.AllAvailableProducts(ctx) {
			ids = append(ids, product.ID)
		}
	}
	reports := s.Resolver.DebugProducts(ctx, ids)
	invalid := 0
	for _, report := range reports {
		if !report.Validation.Valid {
			invalid++
		}
	}
	log.Ctx(ctx).Debug().Int("products", len(reports)).Int("invalid", invalid).Msg("image validation finished")
	return ValidateImagesResult{Reports: reports, Invalid: invalid}
}

func (s *Service) ClearCache(ctx context.Context, req ClearCacheRequest) ClearCacheResult {
	ids := shared.SplitIDs([]string{req.ID})
	if len(ids) == 0 {
		return ClearCacheResult{Dropped: s.Resolver.ClearCache(ctx)}
	}
	dropped := 0
	for _, id := range ids {
		dropped += s.Resolver.ClearCacheFor(ctx, id)
	}
	return ClearCacheResult{Dropped: dropped}
}
