package core

import (
	"storefront-catalog/internal/ports"
	"storefront-catalog/internal/types"
)

type ProbeMode int

const (
	// ProbeByID looks up each eligible alias with GetByID.
	ProbeByID ProbeMode = iota
	// ProbeScanExact walks ListAll and takes the first record whose ID is
	// an eligible alias.
	ProbeScanExact
	// ProbeScanFuzzy walks ListAll and takes the first record whose ID
	// equals an alias case-insensitively, whose name slug equals one, or
	// whose name contains one.
	ProbeScanFuzzy
)

// ProbeStep pairs a source with the namespaces it may satisfy.
type ProbeStep struct {
	Name   string
	Source ports.CatalogSourcePort
	Mode   ProbeMode
	// Applies gates the step on the namespace of the alias set. Nil
	// applies to every set.
	Applies func(ns types.Namespace) bool
	// Accepts filters the aliases the step may try. Nil accepts all.
	Accepts func(alias string) bool
}

// Catalogs names the sources the resolver knows about. Nil fields are
// skipped.
type Catalogs struct {
	Static           ports.CatalogSourcePort
	Database         ports.CatalogSourcePort
	Makeup           ports.CatalogSourcePort
	Categories       ports.CatalogSourcePort
	MegaHair         ports.CatalogSourcePort
	HairDye          ports.CatalogSourcePort
	NailPolish       ports.CatalogSourcePort
	PerfumeWepink    ports.CatalogSourcePort
	PerfumeBoticario ports.CatalogSourcePort
	PerfumeLegacy    ports.CatalogSourcePort
	Straightening    ports.CatalogSourcePort
}

// ListOrder is the order sources are unioned in and reported in.
func (c Catalogs) ListOrder() []ports.CatalogSourcePort {
	return compact(
		c.Static,
		c.Database,
		c.Makeup,
		c.Categories,
		c.MegaHair,
		c.HairDye,
		c.NailPolish,
		c.PerfumeWepink,
		c.PerfumeBoticario,
		c.PerfumeLegacy,
		c.Straightening,
	)
}

func numericSet(ns types.Namespace) bool {
	return ns == types.NamespaceNumericIndex
}

func nonNumericSet(ns types.Namespace) bool {
	return ns != types.NamespaceNumericIndex
}

func nonNumericAlias(alias string) bool {
	return !IsNumericID(alias)
}

// DefaultProbeOrder builds the resolution priority table. Alias sets with
// a numeric member only ever reach the mega-hair source.
func DefaultProbeOrder(c Catalogs) []ProbeStep {
	steps := []ProbeStep{
		{Name: "megahair-numeric", Source: c.MegaHair, Mode: ProbeByID, Applies: numericSet, Accepts: IsNumericID},
		{Name: "static", Source: c.Static, Mode: ProbeByID, Applies: nonNumericSet, Accepts: nonNumericAlias},
		{Name: "database", Source: c.Database, Mode: ProbeByID, Applies: nonNumericSet, Accepts: nonNumericAlias},
		{Name: "makeup", Source: c.Makeup, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespaceMakeup)},
		{Name: "categories", Source: c.Categories, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespaceCategory)},
		{Name: "hair-dye", Source: c.HairDye, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespaceHairDye)},
		{Name: "nail-polish", Source: c.NailPolish, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespaceNailPolish)},
		{Name: "perfumes-wepink", Source: c.PerfumeWepink, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespacePerfumeWepink)},
		{Name: "perfumes-boticario", Source: c.PerfumeBoticario, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespacePerfumeBoticario)},
		{Name: "straightening", Source: c.Straightening, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespaceStraightening)},
		{Name: "perfumes-legacy", Source: c.PerfumeLegacy, Mode: ProbeByID, Applies: nonNumericSet, Accepts: InNamespace(types.NamespacePerfumeWepink)},
		{Name: "megahair-mapped", Source: c.MegaHair, Mode: ProbeByID},
		{Name: "database-exact", Source: c.Database, Mode: ProbeScanExact, Applies: nonNumericSet, Accepts: nonNumericAlias},
	}
	fuzzy := []struct {
		name   string
		source ports.CatalogSourcePort
	}{
		{"static-fuzzy", c.Static},
		{"categories-fuzzy", c.Categories},
		{"database-fuzzy", c.Database},
		{"makeup-fuzzy", c.Makeup},
		{"hair-dye-fuzzy", c.HairDye},
		{"nail-polish-fuzzy", c.NailPolish},
		{"perfumes-wepink-fuzzy", c.PerfumeWepink},
		{"perfumes-boticario-fuzzy", c.PerfumeBoticario},
		{"straightening-fuzzy", c.Straightening},
		{"perfumes-legacy-fuzzy", c.PerfumeLegacy},
		{"megahair-fuzzy", c.MegaHair},
	}
	for _, entry := range fuzzy {
		steps = append(steps, ProbeStep{Name: entry.name, Source: entry.source, Mode: ProbeScanFuzzy, Applies: nonNumericSet})
	}

	out := steps[:0]
	for _, step := range steps {
		if step.Source != nil {
			out = append(out, step)
		}
	}
	return out
}

func compact(sources ...ports.CatalogSourcePort) []ports.CatalogSourcePort {
	out := make([]ports.CatalogSourcePort, 0, len(sources))
	for _, source := range sources {
		if source != nil {
			out = append(out, source)
		}
	}
	return out
}
