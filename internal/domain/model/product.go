package model

import (
	"strings"
	"time"
)

// Product is a catalog entry offered by the bakery.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Options     []string
	Image       *Asset
	Available   bool
	CreatedAt   time.Time
}

// ProductPatch carries the fields supplied for a partial update. Nil means unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Options     *[]string
	Available   *bool
	Image       *Asset
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil &&
		p.Options == nil && p.Available == nil && p.Image == nil
}

// ParseOptions splits a comma-separated list, trimming entries and dropping empty ones.
func ParseOptions(raw string) []string {
	options := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if opt := strings.TrimSpace(part); opt != "" {
			options = append(options, opt)
		}
	}
	return options
}
