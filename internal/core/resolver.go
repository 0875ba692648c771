package core

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"storefront-catalog/internal/metrics"
	"storefront-catalog/internal/ports"
	"storefront-catalog/internal/types"
)

// ProductResolver answers "which product does this ID refer to" across all
// catalog sources. Each instance owns its cache.
//
// Two concurrent Resolve calls for aliases of the same product may both
// miss the cache and both run the full probe. Both write the same value,
// so no per-key lock is taken.
type ProductResolver struct {
	aliases   *AliasTable
	steps     []ProbeStep
	listOrder []ports.CatalogSourcePort
	cache     *ResolutionCache
	metrics   *metrics.Registry
}

type ResolverOption func(*ProductResolver)

func WithMetrics(registry *metrics.Registry) ResolverOption {
	return func(r *ProductResolver) {
		r.metrics = registry
	}
}

// WithProbeOrder replaces the default priority table.
func WithProbeOrder(steps []ProbeStep) ResolverOption {
	return func(r *ProductResolver) {
		r.steps = steps
	}
}

func NewProductResolver(aliases *AliasTable, catalogs Catalogs, opts ...ResolverOption) (*ProductResolver, error) {
	if aliases == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires an alias table")
	}
	r := &ProductResolver{
		aliases:   aliases,
		steps:     DefaultProbeOrder(catalogs),
		listOrder: catalogs.ListOrder(),
		cache:     NewResolutionCache(aliases),
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.steps) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires at least one catalog source")
	}
	return r, nil
}

func (r *ProductResolver) Aliases() *AliasTable { return r.aliases }

func (r *ProductResolver) Cache() *ResolutionCache { return r.cache }

func (r *ProductResolver) Steps() []ProbeStep {
	return append([]ProbeStep(nil), r.steps...)
}

func (r *ProductResolver) Resolve(ctx context.Context, rawID string) (types.Product, bool) {
	logger := log.Ctx(ctx)
	if strings.TrimSpace(rawID) == "" {
		r.metrics.Miss()
		return types.Product{}, false
	}
	if cached, ok := r.cache.Get(rawID); ok {
		r.metrics.CacheHit()
		logger.Debug().Str("id", rawID).Str("product", cached.Name).Msg("resolved from cache")
		return cached, true
	}
	r.metrics.CacheMiss()

	aliases := r.aliases.Expand(rawID)
	logger.Debug().Str("id", rawID).Strs("aliases", aliases).Msg("alias set expanded")

	record, step, ok := r.probe(ctx, rawID, aliases)
	if !ok {
		r.metrics.Miss()
		logger.Debug().Str("id", rawID).Msg("product not found in any source")
		return types.Product{}, false
	}

	product := Normalize(record)
	assert.NotEmpty(ctx, product.ID, "normalized product id must be set")
	assert.NotEmpty(ctx, product.Name, "normalized product name must be set")

	if report := CheckConsistency(rawID, product); !report.OK {
		r.metrics.ConsistencyWarning()
		first := ""
		if len(product.Images) > 0 {
			first = product.Images[0]
		}
		logger.Warn().
			Str("id", rawID).
			Str("expected_family", string(report.ExpectedFamily)).
			Str("image_family", string(report.ImageFamily)).
			Str("product", product.Name).
			Str("first_image", first).
			Str("step", step.Name).
			Msg("image and product family mismatch")
	}

	r.cache.PutAll(aliases, product)
	r.metrics.Resolved(step.Name)
	logger.Debug().
		Str("id", rawID).
		Str("step", step.Name).
		Str("product", product.Name).
		Int("images", len(product.Images)).
		Strs("cached_as", aliases).
		Msg("product resolved")
	return product, true
}

// probe walks the steps for the alias set as a whole: the namespace and
// the fuzzy needles come from the set, so every member of a set reaches
// the same record whichever alias is resolved first.
func (r *ProductResolver) probe(ctx context.Context, rawID string, aliases []string) (types.Record, ProbeStep, bool) {
	ns := setNamespace(rawID, aliases)
	for _, step := range r.steps {
		if step.Applies != nil && !step.Applies(ns) {
			continue
		}
		eligible := filterAliases(aliases, step.Accepts)
		if step.Mode != ProbeScanFuzzy && len(eligible) == 0 {
			continue
		}
		var (
			record types.Record
			found  bool
		)
		switch step.Mode {
		case ProbeByID:
			record, found = r.probeByID(ctx, step, eligible)
		case ProbeScanExact:
			record, found = r.scan(ctx, step, exactMatcher(eligible))
		case ProbeScanFuzzy:
			record, found = r.scan(ctx, step, fuzzyMatcher(aliases))
		}
		if found {
			return record, step, true
		}
	}
	return nil, ProbeStep{}, false
}

func (r *ProductResolver) probeByID(ctx context.Context, step ProbeStep, aliases []string) (types.Record, bool) {
	for _, alias := range aliases {
		record, ok, err := step.Source.GetByID(ctx, alias)
		if err != nil {
			r.sourceFailed(ctx, step.Source, alias, err)
			continue
		}
		if ok {
			return record, true
		}
	}
	return nil, false
}

func (r *ProductResolver) scan(ctx context.Context, step ProbeStep, match func(types.Record) bool) (types.Record, bool) {
	records, err := step.Source.ListAll(ctx)
	if err != nil {
		r.sourceFailed(ctx, step.Source, "", err)
		return nil, false
	}
	for _, record := range records {
		if match(record) {
			return record, true
		}
	}
	return nil, false
}

func (r *ProductResolver) sourceFailed(ctx context.Context, source ports.CatalogSourcePort, id string, err error) {
	r.metrics.SourceError(string(source.Name()))
	log.Ctx(ctx).Warn().
		Err(err).
		Str("source", string(source.Name())).
		Str("id", id).
		Msg("catalog source lookup failed, treating as absent")
}

// AllAvailableProducts unions every source's listing in source order. A
// record is skipped when any alias of its ID was already listed.
func (r *ProductResolver) AllAvailableProducts(ctx context.Context) []types.Product {
	seen := map[string]struct{}{}
	products := []types.Product{}
	for _, source := range r.listOrder {
		records, err := source.ListAll(ctx)
		if err != nil {
			r.sourceFailed(ctx, source, "", err)
			continue
		}
		for _, record := range records {
			product := Normalize(record)
			aliases := r.aliases.Expand(product.ID)
			if anySeen(seen, aliases) {
				continue
			}
			for _, alias := range aliases {
				seen[alias] = struct{}{}
			}
			products = append(products, product)
		}
	}
	return products
}

// ClearCache drops every cached entry and returns how many there were.
func (r *ProductResolver) ClearCache(ctx context.Context) int {
	dropped := r.cache.Clear()
	r.metrics.Cleared(dropped)
	log.Ctx(ctx).Info().Int("entries", dropped).Msg("product cache cleared")
	return dropped
}

// ClearCacheFor drops the cached entries of every alias of id.
func (r *ProductResolver) ClearCacheFor(ctx context.Context, id string) int {
	dropped := r.cache.ClearAliasSetOf(id)
	r.metrics.Cleared(dropped)
	log.Ctx(ctx).Info().Str("id", id).Int("entries", dropped).Msg("product cache cleared for alias set")
	return dropped
}

// MappingInfo reports the alias set of id and every source holding any of
// its aliases. Namespace gating is not applied, so cross-namespace
// collisions show up here.
func (r *ProductResolver) MappingInfo(ctx context.Context, id string) types.MappingInfo {
	aliases := r.aliases.Expand(id)
	sources := []string{}
	for _, source := range r.listOrder {
		for _, alias := range aliases {
			_, ok, err := source.GetByID(ctx, alias)
			if err != nil {
				r.sourceFailed(ctx, source, alias, err)
				continue
			}
			if ok {
				sources = append(sources, string(source.Name()))
				break
			}
		}
	}
	return types.MappingInfo{
		OriginalID: id,
		Aliases:    aliases,
		Found:      len(sources) > 0,
		Sources:    sources,
	}
}

func (r *ProductResolver) ValidateImages(ctx context.Context, id string) types.ImageValidation {
	validation := types.ImageValidation{Issues: []string{}, Recommendations: []string{}}
	product, ok := r.Resolve(ctx, id)
	if !ok {
		validation.Issues = append(validation.Issues, "Product not found")
		return validation
	}
	report := CheckConsistency(id, product)
	if !report.OK {
		validation.Issues = append(validation.Issues,
			"Image type \""+string(report.ImageFamily)+"\" doesn't match product type \""+string(report.ExpectedFamily)+"\"")
		validation.Recommendations = append(validation.Recommendations,
			"Clear cache for product ID \""+id+"\"",
			"Verify product data source",
			"Check ID mapping consistency",
		)
	}
	if len(product.Images) == 0 {
		validation.Issues = append(validation.Issues, "No images found for product")
		validation.Recommendations = append(validation.Recommendations, "Verify product image paths")
	}
	validation.Valid = len(validation.Issues) == 0
	return validation
}

// DebugProducts builds an operator report for each id.
func (r *ProductResolver) DebugProducts(ctx context.Context, ids []string) []types.DebugReport {
	reports := make([]types.DebugReport, 0, len(ids))
	for _, id := range ids {
		report := types.DebugReport{ID: id}
		if product, ok := r.Resolve(ctx, id); ok {
			report.Found = true
			report.Product = &product
		}
		report.Mapping = r.MappingInfo(ctx, id)
		report.Validation = r.ValidateImages(ctx, id)
		reports = append(reports, report)
	}
	return reports
}

func filterAliases(aliases []string, accept func(string) bool) []string {
	if accept == nil {
		return aliases
	}
	out := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if accept(alias) {
			out = append(out, alias)
		}
	}
	return out
}

func exactMatcher(aliases []string) func(types.Record) bool {
	set := make(map[string]struct{}, len(aliases))
	for _, alias := range aliases {
		set[alias] = struct{}{}
	}
	return func(record types.Record) bool {
		_, ok := set[RecordID(record)]
		return ok
	}
}

func fuzzyMatcher(aliases []string) func(types.Record) bool {
	needles := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if needle := strings.ToLower(alias); needle != "" {
			needles = append(needles, needle)
		}
	}
	return func(record types.Record) bool {
		id := strings.ToLower(RecordID(record))
		name := RecordName(record)
		slug := Slugify(name)
		lowerName := strings.ToLower(name)
		for _, needle := range needles {
			if id == needle {
				return true
			}
			if name != "" && (slug == needle || strings.Contains(lowerName, needle)) {
				return true
			}
		}
		return false
	}
}

// setNamespace classifies an alias set. Any numeric member puts the whole
// set in the numeric index, so its mh-N and mega-hair-N spellings only
// ever reach the mega-hair source.
func setNamespace(rawID string, aliases []string) types.Namespace {
	for _, alias := range aliases {
		if IsNumericID(alias) {
			return types.NamespaceNumericIndex
		}
	}
	return ClassifyNamespace(rawID)
}

func anySeen(seen map[string]struct{}, aliases []string) bool {
	for _, alias := range aliases {
		if _, ok := seen[alias]; ok {
			return true
		}
	}
	return false
}

var _ ports.ProductResolverPort = (*ProductResolver)(nil)
