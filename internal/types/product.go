package types

// Product is the canonical shape every caller consumes, regardless of
// which catalog source supplied the record.
type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Brand       string   `json:"brand" yaml:"brand"`
	Description string   `json:"description" yaml:"description"`
	Images      []string `json:"images" yaml:"images"`
	Badge       string   `json:"badge,omitempty" yaml:"badge,omitempty"`
	Price       float64  `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	// Pricing is passed through from the source untouched.
	Pricing any    `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	Slug    string `json:"slug" yaml:"slug"`
}

// Record is a raw catalog entry as a source produces it. Sources disagree
// on field names (name/nome, brand/marca, images/imagens/image), so the
// record stays untyped until it is normalized.
type Record map[string]any

// MappingInfo describes how an ID expands and which sources hold any of
// its aliases.
type MappingInfo struct {
	OriginalID string   `json:"originalId"`
	Aliases    []string `json:"aliases"`
	Found      bool     `json:"found"`
	Sources    []string `json:"sources"`
}

// ConsistencyReport compares the family implied by an ID with the family
// implied by the product's first image path.
type ConsistencyReport struct {
	OK             bool   `json:"ok"`
	ExpectedFamily Family `json:"expectedFamily"`
	ImageFamily    Family `json:"imageFamily"`
}

type ImageValidation struct {
	Valid           bool     `json:"valid"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

type DebugReport struct {
	ID         string          `json:"id"`
	Found      bool            `json:"found"`
	Mapping    MappingInfo     `json:"mappingInfo"`
	Validation ImageValidation `json:"validation"`
	Product    *Product        `json:"product,omitempty"`
}
