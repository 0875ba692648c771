package ports

import (
	"context"

	"storefront-catalog/internal/types"
)

// ProductResolverPort is the API consumed by route handlers, page
// renderers and operator tooling.
type ProductResolverPort interface {
	// Resolve returns (product, true) on hit and (zero, false) when no
	// source holds any alias of id.
	Resolve(ctx context.Context, id string) (types.Product, bool)
	AllAvailableProducts(ctx context.Context) []types.Product
	ClearCache(ctx context.Context) int
	ClearCacheFor(ctx context.Context, id string) int
	MappingInfo(ctx context.Context, id string) types.MappingInfo
	ValidateImages(ctx context.Context, id string) types.ImageValidation
}
