package core

import (
	"strconv"
	"strings"
	"unicode"

	"storefront-catalog/internal/types"
)

const (
	FallbackID          = "unknown"
	FallbackName        = "Produto sem nome"
	FallbackBrand       = "Marca não informada"
	FallbackDescription = "Descrição não disponível"
	FallbackCategory    = "Produtos Capilares"
)

// Normalize maps a source record onto the canonical product shape. It is
// total: missing or mistyped fields fall back to the defaults above.
func Normalize(record types.Record) types.Product {
	name := firstString(record, "name", "nome")
	if name == "" {
		name = FallbackName
	}
	slug := firstString(record, "slug")
	if slug == "" {
		slug = Slugify(name)
	}
	return types.Product{
		ID:          orDefault(RecordID(record), FallbackID),
		Name:        name,
		Brand:       orDefault(firstString(record, "brand", "marca"), FallbackBrand),
		Description: orDefault(firstString(record, "description", "descricao"), FallbackDescription),
		Images:      recordImages(record),
		Badge:       firstString(record, "badge"),
		Price:       recordPrice(record),
		Category:    orDefault(firstString(record, "category"), FallbackCategory),
		Pricing:     cloneValue(record["pricing"]),
		Slug:        slug,
	}
}

// RecordID returns the record's own ID as a string, or "" when absent.
func RecordID(record types.Record) string {
	for _, key := range []string{"id", "productId"} {
		if value, ok := scalarString(record[key]); ok && value != "" {
			return value
		}
	}
	return ""
}

// RecordName returns the display name a record carries, or "".
func RecordName(record types.Record) string {
	return firstString(record, "name", "nome")
}

// Slugify lower-cases value, drops everything outside [a-z0-9], and joins
// the remaining words with single hyphens.
func Slugify(value string) string {
	var builder strings.Builder
	pending := false
	for _, r := range strings.ToLower(value) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pending && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pending = false
			builder.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pending = true
		}
	}
	return builder.String()
}

func recordImages(record types.Record) []string {
	for _, key := range []string{"images", "imagens"} {
		if images, ok := stringSlice(record[key]); ok {
			return images
		}
	}
	for _, key := range []string{"image", "imagem"} {
		if image, ok := record[key].(string); ok && image != "" {
			return []string{image}
		}
	}
	return []string{}
}

func recordPrice(record types.Record) float64 {
	if price, ok := number(record["preco_eur"]); ok && price != 0 {
		return price
	}
	if pricing, ok := asMap(record["pricing"]); ok {
		if price, ok := number(pricing["discountPrice"]); ok && price != 0 {
			return price
		}
	}
	if price, ok := number(record["price"]); ok {
		return price
	}
	return 0
}

func firstString(record types.Record, keys ...string) string {
	for _, key := range keys {
		if value, ok := record[key].(string); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func stringSlice(value any) ([]string, bool) {
	switch typed := value.(type) {
	case []string:
		return append([]string{}, typed...), true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func scalarString(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case uint64:
		return strconv.FormatUint(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	default:
		return "", false
	}
}

func number(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}

// asMap accepts nested mappings whichever map type the decoder produced.
// yaml.v3 reuses Record for mappings nested inside a Record.
func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case types.Record:
		return typed, true
	default:
		return nil, false
	}
}

// cloneValue deep-copies nested maps and slices. Copied mappings are
// always map[string]any.
func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case types.Record:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string{}, typed...)
	default:
		return value
	}
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}
