package postgres

import (
	"encoding/json"
	"time"

	"github.com/polkiloo/bakery/internal/domain/model"
)

type assetDoc struct {
	URL    string `json:"url"`
	Handle string `json:"handle"`
}

type orderDoc struct {
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	Landmark      string     `json:"landmark"`
	City          string     `json:"city"`
	Pincode       string     `json:"pincode"`
	PaymentMethod string     `json:"paymentMethod"`
	Cart          model.Cart `json:"cart"`
	Total         float64    `json:"total"`
	Screenshot    *assetDoc  `json:"screenshot,omitempty"`
	Status        string     `json:"status"`
}

type productDoc struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Options     []string  `json:"options"`
	Image       *assetDoc `json:"image,omitempty"`
	Available   bool      `json:"available"`
}

func toAssetDoc(a *model.Asset) *assetDoc {
	if a == nil {
		return nil
	}
	return &assetDoc{URL: a.URL, Handle: a.Handle}
}

func (a *assetDoc) model() *model.Asset {
	if a == nil {
		return nil
	}
	return &model.Asset{URL: a.URL, Handle: a.Handle}
}

func encodeOrder(o *model.Order) (string, error) {
	body, err := json.Marshal(orderDoc{
		FullName:      o.FullName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		Landmark:      o.Landmark,
		City:          o.City,
		Pincode:       o.Pincode,
		PaymentMethod: o.PaymentMethod,
		Cart:          o.Cart,
		Total:         o.Total,
		Screenshot:    toAssetDoc(o.Screenshot),
		Status:        string(o.Status),
	})
	return string(body), err
}

func decodeOrder(id string, body []byte, createdAt time.Time) (*model.Order, error) {
	var doc orderDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return &model.Order{
		ID:            id,
		FullName:      doc.FullName,
		Email:         doc.Email,
		Phone:         doc.Phone,
		Address:       doc.Address,
		Landmark:      doc.Landmark,
		City:          doc.City,
		Pincode:       doc.Pincode,
		PaymentMethod: doc.PaymentMethod,
		Cart:          doc.Cart,
		Total:         doc.Total,
		Screenshot:    doc.Screenshot.model(),
		Status:        model.OrderStatus(doc.Status),
		CreatedAt:     createdAt,
	}, nil
}

func encodeProduct(p *model.Product) (string, error) {
	options := p.Options
	if options == nil {
		options = []string{}
	}
	body, err := json.Marshal(productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Options:     options,
		Image:       toAssetDoc(p.Image),
		Available:   p.Available,
	})
	return string(body), err
}

func decodeProduct(id string, body []byte, createdAt time.Time) (*model.Product, error) {
	doc := productDoc{Available: true}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	if doc.Options == nil {
		doc.Options = []string{}
	}
	return &model.Product{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
		Category:    doc.Category,
		Options:     doc.Options,
		Image:       doc.Image.model(),
		Available:   doc.Available,
		CreatedAt:   createdAt,
	}, nil
}

// encodePatch renders only supplied fields so that body || patch keeps the rest.
func encodePatch(p model.ProductPatch) (string, error) {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Options != nil {
		fields["options"] = *p.Options
	}
	if p.Available != nil {
		fields["available"] = *p.Available
	}
	if p.Image != nil {
		fields["image"] = toAssetDoc(p.Image)
	}
	body, err := json.Marshal(fields)
	return string(body), err
}
