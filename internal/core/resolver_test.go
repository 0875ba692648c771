package core

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-catalog/internal/metrics"
	"storefront-catalog/internal/types"
)

type fakeSource struct {
	name    types.SourceName
	records []types.Record
	err     error

	mu      sync.Mutex
	lookups []string
	lists   int
}

func newFakeSource(name types.SourceName, records ...types.Record) *fakeSource {
	return &fakeSource{name: name, records: records}
}

func (f *fakeSource) Name() types.SourceName { return f.name }

func (f *fakeSource) GetByID(_ context.Context, id string) (types.Record, bool, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, id)
	f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	for _, record := range f.records {
		if RecordID(record) == id {
			return record, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeSource) ListAll(_ context.Context) ([]types.Record, error) {
	f.mu.Lock()
	f.lists++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]types.Record(nil), f.records...), nil
}

func (f *fakeSource) lookedUp() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lookups...)
}

type storefront struct {
	static     *fakeSource
	database   *fakeSource
	makeup     *fakeSource
	categories *fakeSource
	megaHair   *fakeSource
	nailPolish *fakeSource
}

func newStorefront() storefront {
	return storefront{
		static: newFakeSource(types.SourceStatic,
			types.Record{
				"id":     "cocochoco-original-premium",
				"name":   "COCOCHOCO Original Premium 1000ML",
				"brand":  "COCOCHOCO",
				"images": []string{"/images/products/progressivas_diversas/1.JPG"},
				"price":  149.9,
			},
			types.Record{"id": "42", "name": "Kit Promocional"},
		),
		database: newFakeSource(types.SourceDatabase),
		makeup: newFakeSource(types.SourceMakeup,
			types.Record{
				"id":     "mari-maria-base-amndoa",
				"nome":   "Base Mari Maria - Tom Amêndoa",
				"marca":  "Mari Maria Makeup",
				"images": []string{"/images/mega-hair/liso/wrong.jpg"},
			},
			types.Record{"id": "pam-batom-42", "nome": "Batom 42 Vermelho"},
		),
		categories: newFakeSource(types.SourceCategories,
			types.Record{"id": "prog-001", "name": "Progressiva Cocochoco", "price": 99.0},
		),
		megaHair: newFakeSource(types.SourceMegaHair,
			types.Record{
				"id":      "5",
				"nome":    "Mega Hair Liso Preto 60cm",
				"imagens": []any{"/images/mega-hair/liso/60cm/preto.jpg"},
				"price":   159.9,
			},
		),
		nailPolish: newFakeSource(types.SourceNailPolish,
			types.Record{
				"id":     "impala-esmalte-amore-perolado",
				"nome":   "Esmalte IMPALA Amore",
				"marca":  "IMPALA",
				"images": []string{"/images/products/esmaltes/amore.png"},
			},
		),
	}
}

func (s storefront) catalogs() Catalogs {
	return Catalogs{
		Static:     s.static,
		Database:   s.database,
		Makeup:     s.makeup,
		Categories: s.categories,
		MegaHair:   s.megaHair,
		NailPolish: s.nailPolish,
	}
}

func newTestResolver(t *testing.T, s storefront, opts ...ResolverOption) *ProductResolver {
	t.Helper()
	resolver, err := NewProductResolver(NewDefaultAliasTable(), s.catalogs(), opts...)
	require.NoError(t, err)
	return resolver
}

func TestResolveDeclaredAliasesReturnSameProduct(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())
	byCategory, ok := resolver.Resolve(t.Context(), "prog-001")
	require.True(t, ok)

	fresh := newTestResolver(t, newStorefront())
	byStatic, ok := fresh.Resolve(t.Context(), "cocochoco-original-premium")
	require.True(t, ok)

	if diff := cmp.Diff(byCategory, byStatic); diff != "" {
		t.Fatalf("aliases resolved differently (-want +got):\n%s", diff)
	}
	assert.Equal(t, "cocochoco-original-premium", byCategory.ID)
	assert.Equal(t, "COCOCHOCO", byCategory.Brand)
}

func TestResolveMegaHairNumericNamespace(t *testing.T) {
	s := newStorefront()
	resolver := newTestResolver(t, s)

	want, ok := resolver.Resolve(t.Context(), "5")
	require.True(t, ok)
	assert.Equal(t, "Mega Hair Liso Preto 60cm", want.Name)
	assert.Empty(t, s.static.lookedUp(), "numeric ids must not reach the static source")

	for _, id := range []string{"mh-5", "mega-hair-5"} {
		fresh := newTestResolver(t, newStorefront())
		got, ok := fresh.Resolve(t.Context(), id)
		require.True(t, ok, id)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s resolved differently (-want +got):\n%s", id, diff)
		}
	}
}

func TestResolveNailPolishBrand(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())
	product, ok := resolver.Resolve(t.Context(), "impala-esmalte-amore-perolado")
	require.True(t, ok)
	assert.Equal(t, "IMPALA", product.Brand)
	assert.Equal(t, "esmalte-impala-amore", product.Slug)
}

func TestResolveNotFound(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())
	for _, id := range []string{"does-not-exist-anywhere", "", "   "} {
		product, ok := resolver.Resolve(t.Context(), id)
		assert.False(t, ok, id)
		assert.Equal(t, types.Product{}, product)
	}
	assert.Zero(t, resolver.Cache().Len())
}

func TestNumericIDsStayInMegaHairNamespace(t *testing.T) {
	s := newStorefront()
	resolver := newTestResolver(t, s)

	// Static has a record with ID "42" and makeup a name containing "42";
	// neither may satisfy the numeric index 42.
	_, ok := resolver.Resolve(t.Context(), "42")
	assert.False(t, ok)
	assert.Empty(t, s.static.lookedUp())
	assert.Empty(t, s.makeup.lookedUp())
	assert.Zero(t, s.static.lists)
	assert.Zero(t, s.makeup.lists)
}

func TestNonNumericAliasesOnlyReachTheirNamespace(t *testing.T) {
	s := newStorefront()
	resolver := newTestResolver(t, s)
	_, ok := resolver.Resolve(t.Context(), "impala-esmalte-amore-perolado")
	require.True(t, ok)
	assert.Empty(t, s.makeup.lookedUp(), "makeup only probes makeup-prefixed aliases")
	assert.Empty(t, s.categories.lookedUp())
}

func TestResolveCachesWholeAliasSet(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())
	product, ok := resolver.Resolve(t.Context(), "mh-5")
	require.True(t, ok)

	for _, alias := range resolver.Aliases().Expand("mh-5") {
		cached, hit := resolver.Cache().Get(alias)
		require.True(t, hit, alias)
		if diff := cmp.Diff(product, cached); diff != "" {
			t.Fatalf("cache entry for %s differs (-want +got):\n%s", alias, diff)
		}
	}
}

func TestClearCacheForThenReResolve(t *testing.T) {
	s := newStorefront()
	resolver := newTestResolver(t, s)
	before, ok := resolver.Resolve(t.Context(), "5")
	require.True(t, ok)

	assert.Equal(t, 4, resolver.ClearCacheFor(t.Context(), "5"))
	for _, alias := range []string{"5", "mh-5", "mega-hair-5"} {
		_, hit := resolver.Cache().Get(alias)
		assert.False(t, hit, alias)
	}

	lookupsBefore := len(s.megaHair.lookedUp())
	after, ok := resolver.Resolve(t.Context(), "mh-5")
	require.True(t, ok)
	assert.Greater(t, len(s.megaHair.lookedUp()), lookupsBefore, "re-resolution must search again")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("re-resolution changed the product (-want +got):\n%s", diff)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	s := newStorefront()
	resolver := newTestResolver(t, s)
	first, ok := resolver.Resolve(t.Context(), "prog-001")
	require.True(t, ok)
	lookups := len(s.static.lookedUp())

	second, ok := resolver.Resolve(t.Context(), "prog-001")
	require.True(t, ok)
	assert.Equal(t, lookups, len(s.static.lookedUp()), "second call must be served from cache")
	assert.Equal(t, first, second)

	assert.Equal(t, 2, resolver.ClearCache(t.Context()))
	third, ok := resolver.Resolve(t.Context(), "prog-001")
	require.True(t, ok)
	assert.Equal(t, first, third)
}

func TestSourceErrorIsTreatedAsAbsent(t *testing.T) {
	s := newStorefront()
	s.database.err = errors.New("connection reset")
	s.database.records = []types.Record{{"id": "only-in-db"}}
	registry := metrics.NewRegistry()
	resolver := newTestResolver(t, s, WithMetrics(registry))

	product, ok := resolver.Resolve(t.Context(), "impala-esmalte-amore-perolado")
	require.True(t, ok)
	assert.Equal(t, "IMPALA", product.Brand)

	_, ok = resolver.Resolve(t.Context(), "only-in-db")
	assert.False(t, ok)
	assert.Equal(t, 4.0, testutil.ToFloat64(registry.SourceErrors.WithLabelValues(string(types.SourceDatabase))))
}

func TestFuzzyFallback(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())

	bySlug, ok := resolver.Resolve(t.Context(), "progressiva-cocochoco")
	require.True(t, ok)
	assert.Equal(t, "prog-001", bySlug.ID)

	bySubstring, ok := resolver.Resolve(t.Context(), "1000ml")
	require.True(t, ok)
	assert.Equal(t, "cocochoco-original-premium", bySubstring.ID)

	byCase, ok := resolver.Resolve(t.Context(), "PROG-001")
	require.True(t, ok)
	assert.Equal(t, "prog-001", byCase.ID)
}

func TestConsistencyMismatchIsLoggedNotBlocking(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.WarnLevel)
	ctx := logger.WithContext(t.Context())
	registry := metrics.NewRegistry()
	resolver := newTestResolver(t, newStorefront(), WithMetrics(registry))

	product, ok := resolver.Resolve(ctx, "mari-maria-base-amndoa")
	require.True(t, ok)
	assert.Equal(t, "base-mari-maria-tom-amndoa", product.Slug)
	assert.Contains(t, buf.String(), "image and product family mismatch")
	assert.Contains(t, buf.String(), `"expected_family":"makeup"`)
	assert.Contains(t, buf.String(), `"image_family":"mega-hair"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.ConsistencyWarnings))
}

func TestResolverMetrics(t *testing.T) {
	registry := metrics.NewRegistry()
	resolver := newTestResolver(t, newStorefront(), WithMetrics(registry))

	resolver.Resolve(t.Context(), "5")
	resolver.Resolve(t.Context(), "mh-5")
	resolver.Resolve(t.Context(), "nope")
	resolver.ClearCache(t.Context())

	assert.Equal(t, 1.0, testutil.ToFloat64(registry.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(registry.CacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.NotFound))
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.Resolutions.WithLabelValues("megahair-numeric")))
	assert.Equal(t, 4.0, testutil.ToFloat64(registry.CacheCleared))
}

func TestConcurrentResolveAcrossAliases(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())
	ids := []string{"5", "mh-5", "mega-hair-5", "mega-hair-preto-5"}
	results := make([]types.Product, 40)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = resolver.Resolve(t.Context(), ids[i%len(ids)])
		}(i)
	}
	wg.Wait()
	for i := range results {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Fatalf("result %d differs (-want +got):\n%s", i, diff)
		}
	}
	assert.Equal(t, 4, resolver.Cache().Len())
}

func TestAllAvailableProductsDeduplicatesAliasSets(t *testing.T) {
	s := newStorefront()
	s.database.records = []types.Record{{"id": "cocochoco-original-premium", "name": "Duplicate"}}
	s.megaHair.records = append(s.megaHair.records, types.Record{"id": "mh-5", "nome": "Legacy entry"})
	resolver := newTestResolver(t, s)

	ids := []string{}
	for _, product := range resolver.AllAvailableProducts(t.Context()) {
		ids = append(ids, product.ID)
	}
	want := []string{
		"cocochoco-original-premium",
		"42",
		"mari-maria-base-amndoa",
		"pam-batom-42",
		"5",
		"impala-esmalte-amore-perolado",
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("unexpected listing (-want +got):\n%s", diff)
	}
}

func TestAllAvailableProductsSkipsFailingSource(t *testing.T) {
	s := newStorefront()
	s.static.err = errors.New("disk gone")
	resolver := newTestResolver(t, s)
	products := resolver.AllAvailableProducts(t.Context())
	require.NotEmpty(t, products)
	assert.Equal(t, "mari-maria-base-amndoa", products[0].ID)
}

func TestMappingInfoIgnoresNamespaceGating(t *testing.T) {
	s := newStorefront()
	resolver := newTestResolver(t, s)

	info := resolver.MappingInfo(t.Context(), "prog-001")
	want := types.MappingInfo{
		OriginalID: "prog-001",
		Aliases:    []string{"cocochoco-original-premium", "prog-001"},
		Found:      true,
		Sources:    []string{string(types.SourceStatic), string(types.SourceCategories)},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("unexpected mapping (-want +got):\n%s", diff)
	}

	collision := resolver.MappingInfo(t.Context(), "42")
	assert.True(t, collision.Found, "the static record sharing the digits is reported")
	assert.Equal(t, []string{string(types.SourceStatic)}, collision.Sources)

	missing := resolver.MappingInfo(t.Context(), "does-not-exist-anywhere")
	assert.False(t, missing.Found)
	assert.Empty(t, missing.Sources)
}

func TestValidateImages(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())

	valid := resolver.ValidateImages(t.Context(), "5")
	assert.True(t, valid.Valid)
	assert.Empty(t, valid.Issues)

	mismatch := resolver.ValidateImages(t.Context(), "mari-maria-base-amndoa")
	want := types.ImageValidation{
		Valid:  false,
		Issues: []string{`Image type "mega-hair" doesn't match product type "makeup"`},
		Recommendations: []string{
			`Clear cache for product ID "mari-maria-base-amndoa"`,
			"Verify product data source",
			"Check ID mapping consistency",
		},
	}
	if diff := cmp.Diff(want, mismatch); diff != "" {
		t.Fatalf("unexpected validation (-want +got):\n%s", diff)
	}

	noImages := resolver.ValidateImages(t.Context(), "pam-batom-42")
	assert.False(t, noImages.Valid)
	assert.Equal(t, []string{"No images found for product"}, noImages.Issues)
	assert.Equal(t, []string{"Verify product image paths"}, noImages.Recommendations)

	missing := resolver.ValidateImages(t.Context(), "does-not-exist-anywhere")
	assert.Equal(t, []string{"Product not found"}, missing.Issues)
}

func TestDebugProducts(t *testing.T) {
	resolver := newTestResolver(t, newStorefront())
	reports := resolver.DebugProducts(t.Context(), []string{"mh-5", "nope"})
	require.Len(t, reports, 2)

	assert.True(t, reports[0].Found)
	require.NotNil(t, reports[0].Product)
	assert.Equal(t, "5", reports[0].Product.ID)
	assert.True(t, reports[0].Validation.Valid)
	assert.Equal(t, []string{string(types.SourceMegaHair)}, reports[0].Mapping.Sources)

	assert.False(t, reports[1].Found)
	assert.Nil(t, reports[1].Product)
	assert.False(t, reports[1].Mapping.Found)
}

func TestNewProductResolverValidation(t *testing.T) {
	_, err := NewProductResolver(nil, newStorefront().catalogs())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = NewProductResolver(NewDefaultAliasTable(), Catalogs{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestWithProbeOrder(t *testing.T) {
	s := newStorefront()
	resolver, err := NewProductResolver(NewDefaultAliasTable(), s.catalogs(), WithProbeOrder([]ProbeStep{
		{Name: "categories-first", Source: s.categories, Mode: ProbeByID},
	}))
	require.NoError(t, err)

	product, ok := resolver.Resolve(t.Context(), "cocochoco-original-premium")
	require.True(t, ok)
	assert.Equal(t, "prog-001", product.ID)
	if diff := cmp.Diff([]string{"categories-first"}, stepNames(resolver.Steps())); diff != "" {
		t.Fatalf("unexpected steps (-want +got):\n%s", diff)
	}
}

func TestMegaHairAliasSetIgnoresOtherSourcesInAnyOrder(t *testing.T) {
	newColliding := func() storefront {
		s := newStorefront()
		s.static.records = append(s.static.records, types.Record{"id": "mega-hair-5", "name": "Static Kit"})
		return s
	}
	orders := [][]string{
		{"5", "mh-5", "mega-hair-5"},
		{"mega-hair-5", "5", "mh-5"},
		{"mh-5", "mega-hair-5", "5"},
	}
	for _, order := range orders {
		resolver := newTestResolver(t, newColliding())
		for _, id := range order {
			product, ok := resolver.Resolve(t.Context(), id)
			require.True(t, ok, id)
			assert.Equal(t, "5", product.ID, "order %v, id %s", order, id)
			assert.Equal(t, "Mega Hair Liso Preto 60cm", product.Name, "order %v, id %s", order, id)
		}
	}
}

func TestMegaHairSpellingWithoutMegaHairRecordStaysUnresolved(t *testing.T) {
	s := newStorefront()
	s.megaHair.records = nil
	s.static.records = append(s.static.records, types.Record{"id": "mh-5", "name": "Static Kit"})
	resolver := newTestResolver(t, s)

	_, ok := resolver.Resolve(t.Context(), "mh-5")
	assert.False(t, ok)
	_, ok = resolver.Resolve(t.Context(), "5")
	assert.False(t, ok)
	assert.Empty(t, s.static.lookedUp())
}

func TestResolvedPricingIsNotShared(t *testing.T) {
	s := newStorefront()
	s.static.records = append(s.static.records, types.Record{
		"id":      "x-1",
		"name":    "Kit X",
		"pricing": types.Record{"discountPrice": 8.9},
	})
	resolver := newTestResolver(t, s)

	first, ok := resolver.Resolve(t.Context(), "x-1")
	require.True(t, ok)
	first.Pricing.(map[string]any)["discountPrice"] = 999.0

	cached, ok := resolver.Resolve(t.Context(), "x-1")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"discountPrice": 8.9}, cached.Pricing)

	resolver.ClearCache(t.Context())
	again, ok := resolver.Resolve(t.Context(), "x-1")
	require.True(t, ok)
	assert.InDelta(t, 8.9, again.Price, 0.0001)
}
