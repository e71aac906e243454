package dto

import (
	"time"

	"github.com/polkiloo/bakery/internal/domain/model"
)

// AssetResponse exposes a stored file reference.
type AssetResponse struct {
	URL    string `json:"url"`
	Handle string `json:"handle"`
}

// OrderResponse describes an order returned to clients.
type OrderResponse struct {
	ID            string         `json:"id"`
	FullName      string         `json:"fullName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	Landmark      string         `json:"landmark"`
	City          string         `json:"city"`
	Pincode       string         `json:"pincode"`
	PaymentMethod string         `json:"paymentMethod"`
	Cart          model.Cart     `json:"cart"`
	Total         float64        `json:"total"`
	Screenshot    *AssetResponse `json:"screenshot,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// OrderEnvelope wraps one order.
type OrderEnvelope struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

// OrdersEnvelope wraps the order list.
type OrdersEnvelope struct {
	Success bool            `json:"success"`
	Orders  []OrderResponse `json:"orders"`
}

// PlaceOrderResponse acknowledges a placed order.
type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// StatusRequest carries a new order status.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// NewAssetResponse converts an asset reference.
func NewAssetResponse(a *model.Asset) *AssetResponse {
	if a == nil {
		return nil
	}
	return &AssetResponse{URL: a.URL, Handle: a.Handle}
}

// NewOrderResponse converts a domain order.
func NewOrderResponse(o model.Order) OrderResponse {
	cart := o.Cart
	if cart == nil {
		cart = model.Cart{}
	}
	return OrderResponse{
		ID:            o.ID,
		FullName:      o.FullName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		Landmark:      o.Landmark,
		City:          o.City,
		Pincode:       o.Pincode,
		PaymentMethod: o.PaymentMethod,
		Cart:          cart,
		Total:         o.Total,
		Screenshot:    NewAssetResponse(o.Screenshot),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
}
