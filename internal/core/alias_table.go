package core

import "strconv"

// megaHairLegacyCount is the number of numeric mega-hair indexes that also
// circulate as mh-N and mega-hair-N.
const megaHairLegacyCount = 20

// DefaultAliasEdges is the compiled-in alias table.
func DefaultAliasEdges() []AliasEdge {
	edges := []AliasEdge{
		// category SKUs and the static catalog entries for the same bottle
		{A: "prog-001", B: "cocochoco-original-premium"},
		{A: "prog-002", B: "cocochoco-gold-premium"},
		{A: "prog-003", B: "tzaha-diamante-total-liss"},

		// descriptive spellings still linked from old campaigns
		{A: "mega-hair-liso-1", B: "1"},
		{A: "mega-hair-liso-2", B: "2"},
		{A: "mega-hair-ondulado-3", B: "3"},
		{A: "mega-hair-cacheado-4", B: "4"},
		{A: "mega-hair-preto-5", B: "5"},
	}
	for i := 1; i <= megaHairLegacyCount; i++ {
		n := strconv.Itoa(i)
		edges = append(edges,
			AliasEdge{A: n, B: "mh-" + n},
			AliasEdge{A: n, B: "mega-hair-" + n},
		)
	}
	return edges
}

func NewDefaultAliasTable() *AliasTable {
	return NewAliasTable(DefaultAliasEdges())
}
