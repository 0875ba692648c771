package core

import (
	"strings"

	"storefront-catalog/internal/types"
)

type keywordRule struct {
	family types.Family
	name   []string
	brand  []string
}

// contentRules are tried in order when the ID namespace implies no family.
var contentRules = []keywordRule{
	{family: types.FamilyMegaHair, name: []string{"mega hair", "mega-hair"}},
	{family: types.FamilyMakeup, name: []string{"base "}, brand: []string{"mari maria", "bruna tavares"}},
	{family: types.FamilyNailPolish, name: []string{"esmalte"}, brand: []string{"impala"}},
	{family: types.FamilyHairDye, name: []string{"coloração", "tinta"}, brand: []string{"biocolor", "wella", "alfaparf"}},
	{family: types.FamilyPerfume, name: []string{"perfume", "colônia"}, brand: []string{"wepink"}},
	{family: types.FamilyStraightening, name: []string{"progressiva", "relaxamento", "botox", "cocochoco"}},
}

type pathRule struct {
	family    types.Family
	fragments []string
}

var imageRules = []pathRule{
	{types.FamilyMegaHair, []string{"mega-hair", "g-hair"}},
	{types.FamilyMakeup, []string{"mari-maria", "bruna-tavares", "/maquiagem/"}},
	{types.FamilyNailPolish, []string{"esmalte", "impala"}},
	{types.FamilyHairDye, []string{"tinta_", "produtos_diversos"}},
	{types.FamilyPerfume, []string{"perfume", "wepink", "boticario"}},
	{types.FamilyStraightening, []string{"progressiva", "relaxamento", "botox", "tratamento", "cadiveu"}},
}

// InferFamily classifies a resolved product: the ID namespace decides when
// it can, otherwise keywords in the name, description and brand do. Name
// keywords are also looked for in the description.
func InferFamily(id string, product types.Product) types.Family {
	if family := FamilyForNamespace(ClassifyNamespace(id)); family != types.FamilyUnknown {
		return family
	}
	name := strings.ToLower(product.Name)
	description := strings.ToLower(product.Description)
	brand := strings.ToLower(product.Brand)
	for _, rule := range contentRules {
		if containsAny(name, rule.name) || containsAny(description, rule.name) || containsAny(brand, rule.brand) {
			return rule.family
		}
	}
	return types.FamilyUnknown
}

// ImageFamily classifies an image path by the directory and file naming
// conventions of each family's image tree.
func ImageFamily(path string) types.Family {
	lower := strings.ToLower(strings.TrimSpace(path))
	if lower == "" {
		return types.FamilyUnknown
	}
	for _, rule := range imageRules {
		if containsAny(lower, rule.fragments) {
			return rule.family
		}
	}
	return types.FamilyUnknown
}

func containsAny(value string, fragments []string) bool {
	for _, fragment := range fragments {
		if strings.Contains(value, fragment) {
			return true
		}
	}
	return false
}
