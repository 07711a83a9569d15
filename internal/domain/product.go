package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("not found")

type Product struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  float64           `json:"originalPrice,omitempty"`
	Image          string            `json:"image"`
	Images         []string          `json:"images,omitempty"`
	Media360       []string          `json:"media360,omitempty"`
	Category       string            `json:"category"`
	Features       []string          `json:"features"`
	InStock        int               `json:"inStock"`
	Featured       bool              `json:"featured"`
	Rating         float64           `json:"rating,omitempty"`
	ReviewCount    int               `json:"reviewCount,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// ProductFilter narrows Catalog listings. The price bounds and Featured
// are pointers so that zero and false stay expressible as filters.
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Featured *bool
}

func (f ProductFilter) Empty() bool {
	return f.Search == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil && f.Featured == nil
}

// Matches reports whether p satisfies every set constraint of f.
// The search term matches case-insensitively over name, category and
// description together.
func (f ProductFilter) Matches(p Product) bool {
	if f.Search != "" && !containsFold(p.Name+" "+p.Category+" "+p.Description, f.Search) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
