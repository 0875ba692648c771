package core

import (
	"sort"
	"strings"
)

// AliasEdge declares that two ID spellings name the same physical product.
// Edges are undirected.
type AliasEdge struct {
	A string
	B string
}

// AliasTable holds the closure of the declared edges. Components are
// computed once at construction, so Expand never takes a lock.
type AliasTable struct {
	edges      []AliasEdge
	components map[string][]string
}

func NewAliasTable(edges []AliasEdge) *AliasTable {
	parent := map[string]string{}
	var find func(string) string
	find = func(id string) string {
		root, ok := parent[id]
		if !ok {
			parent[id] = id
			return id
		}
		if root == id {
			return id
		}
		root = find(root)
		parent[id] = root
		return root
	}

	kept := make([]AliasEdge, 0, len(edges))
	for _, edge := range edges {
		a := strings.TrimSpace(edge.A)
		b := strings.TrimSpace(edge.B)
		if a == "" || b == "" {
			continue
		}
		kept = append(kept, AliasEdge{A: a, B: b})
		ra, rb := find(a), find(b)
		if ra == rb {
			continue
		}
		// Smaller root wins so component roots do not depend on edge order.
		if rb < ra {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	groups := map[string][]string{}
	for id := range parent {
		root := find(id)
		groups[root] = append(groups[root], id)
	}
	components := make(map[string][]string, len(parent))
	for _, members := range groups {
		sort.Strings(members)
		for _, id := range members {
			components[id] = members
		}
	}
	return &AliasTable{edges: kept, components: components}
}

// Expand returns the alias set of id in lexicographic order. The set always
// contains id itself; IDs the table does not mention expand to {id}.
func (t *AliasTable) Expand(id string) []string {
	if t == nil {
		return []string{id}
	}
	members, ok := t.components[id]
	if !ok {
		return []string{id}
	}
	return append([]string(nil), members...)
}

// Edges returns the declared edges, blank entries dropped.
func (t *AliasTable) Edges() []AliasEdge {
	if t == nil {
		return nil
	}
	return append([]AliasEdge(nil), t.edges...)
}

// SameProduct reports whether a and b share an alias set.
func (t *AliasTable) SameProduct(a, b string) bool {
	if a == b {
		return true
	}
	for _, alias := range t.Expand(a) {
		if alias == b {
			return true
		}
	}
	return false
}
