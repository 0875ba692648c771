package app

import (
	"time"

	"storefront-catalog/internal/types"
)

// Config selects the catalog sources a Service is built from.
type Config struct {
	// CatalogDir overrides the compiled-in catalogs when set.
	CatalogDir      string
	DatabaseDSN     string
	DatabaseTimeout time.Duration
	// MigrateDatabase creates the products table on startup.
	MigrateDatabase bool
}

type ResolveRequest struct {
	IDs []string
}

type ResolveResult struct {
	ID      string
	Found   bool
	Product types.Product
}

type ListResult struct {
	Products []types.Product
}

type MappingRequest struct {
	ID string
}

type ValidateImagesRequest struct {
	// IDs to validate. Empty validates every listed product.
	IDs []string
}

type ValidateImagesResult struct {
	Reports []types.DebugReport
	Invalid int
}

type ClearCacheRequest struct {
	// ID limits the clear to one alias set. Empty clears everything.
	ID string
}

type ClearCacheResult struct {
	Dropped int
}
