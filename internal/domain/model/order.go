package model

import "time"

// OrderStatus is a free-form label describing fulfilment progress.
type OrderStatus string

// Well-known statuses used by the storefront. Any other non-empty value is accepted.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusBaking    OrderStatus = "baking"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order describes a customer purchase with delivery details.
type Order struct {
	ID            string
	FullName      string
	Email         string
	Phone         string
	Address       string
	Landmark      string
	City          string
	Pincode       string
	PaymentMethod string
	Cart          Cart
	Total         float64
	Screenshot    *Asset
	Status        OrderStatus
	CreatedAt     time.Time
}
