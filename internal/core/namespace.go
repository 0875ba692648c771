package core

import (
	"strings"

	"storefront-catalog/internal/types"
)

type prefixPattern struct {
	prefix    string
	namespace types.Namespace
}

// namespacePrefixes is evaluated top to bottom; the first match wins, so
// wepink-virginia- (makeup) must stay above wepink- (perfume).
var namespacePrefixes = []prefixPattern{
	{"mh-", types.NamespaceMegaHair},
	{"mega-hair-", types.NamespaceMegaHair},

	{"mari-maria-", types.NamespaceMakeup},
	{"bruna-tavares-", types.NamespaceMakeup},
	{"bt-", types.NamespaceMakeup},
	{"pam-", types.NamespaceMakeup},
	{"base-fran-", types.NamespaceMakeup},
	{"wepink-virginia-", types.NamespaceMakeup},

	{"impala-esmalte-", types.NamespaceNailPolish},

	{"biocolor-", types.NamespaceHairDye},
	{"wella-", types.NamespaceHairDye},
	{"alfaparf-", types.NamespaceHairDye},
	{"loreal-", types.NamespaceHairDye},
	{"garnier-", types.NamespaceHairDye},
	{"amend-", types.NamespaceHairDye},

	{"wepink-", types.NamespacePerfumeWepink},
	{"boticario-", types.NamespacePerfumeBoticario},

	{"cadiveu", types.NamespaceStraightening},
	{"brasil-cacau", types.NamespaceStraightening},
	{"progressiva", types.NamespaceStraightening},
	{"btx", types.NamespaceStraightening},
	{"forever-liss", types.NamespaceStraightening},
	{"cocochoco", types.NamespaceStraightening},

	{"prog-", types.NamespaceCategory},
	{"trat-", types.NamespaceCategory},
	{"maq-", types.NamespaceCategory},
	{"sham-", types.NamespaceCategory},
	{"ferr-", types.NamespaceCategory},
	{"cat-", types.NamespaceCategory},
}

// ClassifyNamespace derives the namespace of an ID from the string alone.
func ClassifyNamespace(id string) types.Namespace {
	if IsNumericID(id) {
		return types.NamespaceNumericIndex
	}
	lower := strings.ToLower(id)
	for _, entry := range namespacePrefixes {
		if strings.HasPrefix(lower, entry.prefix) {
			return entry.namespace
		}
	}
	return types.NamespaceUnclassified
}

// IsNumericID reports whether id is a non-empty run of ASCII digits.
func IsNumericID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// InNamespace returns a predicate matching IDs classified into one of the
// given namespaces.
func InNamespace(namespaces ...types.Namespace) func(string) bool {
	return func(id string) bool {
		ns := ClassifyNamespace(id)
		for _, want := range namespaces {
			if ns == want {
				return true
			}
		}
		return false
	}
}

// FamilyForNamespace maps an ID namespace to the product family it implies.
// Category SKUs and unclassified IDs imply nothing.
func FamilyForNamespace(ns types.Namespace) types.Family {
	switch ns {
	case types.NamespaceNumericIndex, types.NamespaceMegaHair:
		return types.FamilyMegaHair
	case types.NamespaceMakeup:
		return types.FamilyMakeup
	case types.NamespaceNailPolish:
		return types.FamilyNailPolish
	case types.NamespaceHairDye:
		return types.FamilyHairDye
	case types.NamespacePerfumeWepink, types.NamespacePerfumeBoticario:
		return types.FamilyPerfume
	case types.NamespaceStraightening:
		return types.FamilyStraightening
	default:
		return types.FamilyUnknown
	}
}
