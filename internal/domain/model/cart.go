package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
)

// LineItem is one cart position. Keys the storefront sends beyond the known
// ones are kept in Extra and written back unchanged.
type LineItem struct {
	Name     string
	Quantity int
	Price    float64
	Option   string
	Image    string
	Extra    map[string]any
}

type lineItemJSON struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Option   string  `json:"option,omitempty"`
	Image    string  `json:"image,omitempty"`
}

var lineItemKeys = []string{"name", "quantity", "price", "option", "image"}

// UnmarshalJSON decodes the known keys and collects the rest into Extra.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var known lineItemJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var rest map[string]any
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	for key := range rest {
		for _, known := range lineItemKeys {
			if strings.EqualFold(key, known) {
				delete(rest, key)
				break
			}
		}
	}
	if len(rest) == 0 {
		rest = nil
	}

	*li = LineItem{
		Name:     known.Name,
		Quantity: known.Quantity,
		Price:    known.Price,
		Option:   known.Option,
		Image:    known.Image,
		Extra:    rest,
	}
	return nil
}

// MarshalJSON writes the known keys over any extra ones.
func (li LineItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(li.Extra)+len(lineItemKeys))
	for k, v := range li.Extra {
		out[k] = v
	}
	out["name"] = li.Name
	out["quantity"] = li.Quantity
	out["price"] = li.Price
	if li.Option != "" {
		out["option"] = li.Option
	}
	if li.Image != "" {
		out["image"] = li.Image
	}
	return json.Marshal(out)
}

// Cart is the ordered list of items placed with an order.
type Cart []LineItem

// ParseCart decodes a JSON array of line items and validates every entry.
func ParseCart(raw string) (Cart, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domainErrors.ErrInvalidCart
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, domainErrors.ErrInvalidCart
	}
	if len(cart) == 0 {
		return nil, domainErrors.ErrInvalidCart
	}

	for i := range cart {
		cart[i].Name = strings.TrimSpace(cart[i].Name)
		if cart[i].Name == "" || cart[i].Quantity < 1 || cart[i].Price < 0 {
			return nil, domainErrors.ErrInvalidCart
		}
	}
	return cart, nil
}

// Subtotal sums price*quantity without floating point drift.
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
