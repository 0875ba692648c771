package core

import (
	"sync"

	"storefront-catalog/internal/types"
)

// ResolutionCache maps every alias of a resolved product to the same
// canonical value. One mutex guards the map; PutAll holds it for the whole
// alias set, so no reader ever sees part of a set cached.
type ResolutionCache struct {
	aliases *AliasTable

	mu      sync.RWMutex
	entries map[string]types.Product
}

func NewResolutionCache(aliases *AliasTable) *ResolutionCache {
	return &ResolutionCache{
		aliases: aliases,
		entries: map[string]types.Product{},
	}
}

func (c *ResolutionCache) Get(alias string) (types.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.entries[alias]
	if !ok {
		return types.Product{}, false
	}
	return cloneProduct(product), true
}

// PutAll stores product under every alias.
func (c *ResolutionCache) PutAll(aliases []string, product types.Product) {
	stored := cloneProduct(product)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, alias := range aliases {
		c.entries[alias] = stored
	}
}

// Clear drops every entry and returns how many were dropped.
func (c *ResolutionCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := len(c.entries)
	c.entries = map[string]types.Product{}
	return dropped
}

// ClearAliasSetOf drops the entries of every alias of id, plus any entry
// whose product ID is one of those aliases (a mega-hair "05" lookup is
// cached under "05" alone but holds product "5"). It returns how many
// entries were dropped.
func (c *ResolutionCache) ClearAliasSetOf(id string) int {
	set := map[string]struct{}{}
	for _, alias := range c.aliases.Expand(id) {
		set[alias] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key, product := range c.entries {
		_, byKey := set[key]
		_, byProduct := set[product.ID]
		if byKey || byProduct {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

func (c *ResolutionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cloneProduct copies the image slice and the pricing blob so callers
// cannot mutate a cached entry through a returned value.
func cloneProduct(product types.Product) types.Product {
	product.Images = append([]string{}, product.Images...)
	product.Pricing = cloneValue(product.Pricing)
	return product
}
