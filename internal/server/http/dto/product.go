package dto

import (
	"time"

	"github.com/polkiloo/bakery/internal/domain/model"
)

// ProductResponse describes a catalog product returned to clients.
type ProductResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Options     []string       `json:"options"`
	Image       *AssetResponse `json:"image,omitempty"`
	Available   bool           `json:"available"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ProductEnvelope wraps one product.
type ProductEnvelope struct {
	Success bool            `json:"success"`
	Product ProductResponse `json:"product"`
}

// ProductsEnvelope wraps the catalog.
type ProductsEnvelope struct {
	Success  bool              `json:"success"`
	Products []ProductResponse `json:"products"`
}

// ToggleResponse reports the availability after a toggle.
type ToggleResponse struct {
	Success   bool            `json:"success"`
	Available bool            `json:"available"`
	Product   ProductResponse `json:"product"`
}

// NewProductResponse converts a domain product.
func NewProductResponse(p model.Product) ProductResponse {
	options := p.Options
	if options == nil {
		options = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Options:     options,
		Image:       NewAssetResponse(p.Image),
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
	}
}
