package adapters

import (
	"context"
	"strconv"

	"storefront-catalog/internal/core"
	"storefront-catalog/internal/ports"
	"storefront-catalog/internal/types"
)

// MegaHairCatalog is the legacy mega-hair list keyed by small integers.
// Numeric lookups compare by value, so "05" finds record 5. The resolver
// caches that hit under "05" alone; clearing the alias set of 5 drops it
// too, because the cached product's ID is "5".
type MegaHairCatalog struct {
	*StaticCatalog
	byNumber map[int]int
}

func NewMegaHairCatalog(records []types.Record) *MegaHairCatalog {
	catalog := &MegaHairCatalog{
		StaticCatalog: NewStaticCatalog(types.SourceMegaHair, records),
		byNumber:      map[int]int{},
	}
	for i, record := range records {
		id := core.RecordID(record)
		if !core.IsNumericID(id) {
			continue
		}
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if _, exists := catalog.byNumber[n]; !exists {
			catalog.byNumber[n] = i
		}
	}
	return catalog
}

func (c *MegaHairCatalog) GetByID(ctx context.Context, id string) (types.Record, bool, error) {
	if record, ok, _ := c.StaticCatalog.GetByID(ctx, id); ok {
		return record, true, nil
	}
	if !core.IsNumericID(id) {
		return nil, false, nil
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, false, nil
	}
	i, ok := c.byNumber[n]
	if !ok {
		return nil, false, nil
	}
	return c.records[i], true, nil
}

var _ ports.CatalogSourcePort = (*MegaHairCatalog)(nil)
