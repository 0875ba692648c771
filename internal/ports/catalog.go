package ports

import (
	"context"

	"storefront-catalog/internal/types"
)

// CatalogSourcePort is a read-only provider of product records for one
// product family. Static sources never fail; the database source may, and
// callers treat a failure as "absent".
type CatalogSourcePort interface {
	Name() types.SourceName
	GetByID(ctx context.Context, id string) (types.Record, bool, error)
	ListAll(ctx context.Context) ([]types.Record, error)
}
