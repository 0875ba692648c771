package adapters

import (
	"context"

	"github.com/rs/zerolog/log"

	"storefront-catalog/internal/core"
	"storefront-catalog/internal/ports"
	"storefront-catalog/internal/types"
)

// StaticCatalog is an immutable in-memory source. Lookups are exact on the
// record's own ID; when two records share an ID the first one wins.
type StaticCatalog struct {
	name    types.SourceName
	records []types.Record
	index   map[string]int
}

func NewStaticCatalog(name types.SourceName, records []types.Record) *StaticCatalog {
	catalog := &StaticCatalog{
		name:    name,
		records: records,
		index:   make(map[string]int, len(records)),
	}
	for i, record := range records {
		id := core.RecordID(record)
		if id == "" {
			continue
		}
		if _, exists := catalog.index[id]; exists {
			log.Debug().
				Str("source", string(name)).
				Str("id", id).
				Msg("duplicate catalog id, keeping first record")
			continue
		}
		catalog.index[id] = i
	}
	return catalog
}

func (c *StaticCatalog) Name() types.SourceName { return c.name }

func (c *StaticCatalog) GetByID(_ context.Context, id string) (types.Record, bool, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, false, nil
	}
	return c.records[i], true, nil
}

func (c *StaticCatalog) ListAll(_ context.Context) ([]types.Record, error) {
	return append([]types.Record(nil), c.records...), nil
}

func (c *StaticCatalog) Len() int { return len(c.records) }

var _ ports.CatalogSourcePort = (*StaticCatalog)(nil)
