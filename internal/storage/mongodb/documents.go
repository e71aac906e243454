package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/polkiloo/bakery/internal/domain/model"
)

type assetDocument struct {
	URL    string `bson:"url"`
	Handle string `bson:"handle"`
}

type lineItemDocument struct {
	Name     string         `bson:"name"`
	Quantity int            `bson:"quantity"`
	Price    float64        `bson:"price"`
	Option   string         `bson:"option,omitempty"`
	Image    string         `bson:"image,omitempty"`
	Extra    map[string]any `bson:",inline"`
}

type orderDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FullName      string             `bson:"fullName"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone"`
	Address       string             `bson:"address"`
	Landmark      string             `bson:"landmark"`
	City          string             `bson:"city"`
	Pincode       string             `bson:"pincode"`
	PaymentMethod string             `bson:"paymentMethod"`
	Cart          []lineItemDocument `bson:"cart"`
	Total         float64            `bson:"total"`
	Screenshot    *assetDocument     `bson:"screenshot,omitempty"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Options     []string           `bson:"options"`
	Image       *assetDocument     `bson:"image,omitempty"`
	Available   *bool              `bson:"available"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func toAssetDocument(a *model.Asset) *assetDocument {
	if a == nil {
		return nil
	}
	return &assetDocument{URL: a.URL, Handle: a.Handle}
}

func (a *assetDocument) model() *model.Asset {
	if a == nil {
		return nil
	}
	return &model.Asset{URL: a.URL, Handle: a.Handle}
}

func newOrderDocument(o *model.Order) orderDocument {
	cart := make([]lineItemDocument, 0, len(o.Cart))
	for _, item := range o.Cart {
		cart = append(cart, lineItemDocument(item))
	}
	return orderDocument{
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
		Screenshot:    toAssetDocument(o.Screenshot),
		Status:        string(o.Status),
	}
}

func (d orderDocument) model() *model.Order {
	cart := make(model.Cart, 0, len(d.Cart))
	for _, item := range d.Cart {
		cart = append(cart, model.LineItem(item))
	}
	return &model.Order{
		ID:            d.ID.Hex(),
		FullName:      d.FullName,
		Email:         d.Email,
		Phone:         d.Phone,
		Address:       d.Address,
		Landmark:      d.Landmark,
		City:          d.City,
		Pincode:       d.Pincode,
		PaymentMethod: d.PaymentMethod,
		Cart:          cart,
		Total:         d.Total,
		Screenshot:    d.Screenshot.model(),
		Status:        model.OrderStatus(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

func newProductDocument(p *model.Product) productDocument {
	options := p.Options
	if options == nil {
		options = []string{}
	}
	available := p.Available
	return productDocument{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Options:     options,
		Image:       toAssetDocument(p.Image),
		Available:   &available,
	}
}

func (d productDocument) model() *model.Product {
	options := d.Options
	if options == nil {
		options = []string{}
	}
	available := true
	if d.Available != nil {
		available = *d.Available
	}
	return &model.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Options:     options,
		Image:       d.Image.model(),
		Available:   available,
		CreatedAt:   d.CreatedAt,
	}
}

// patchFields lists only supplied fields so that $set keeps the rest.
func patchFields(p model.ProductPatch) bson.D {
	var fields bson.D
	if p.Name != nil {
		fields = append(fields, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Description != nil {
		fields = append(fields, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Price != nil {
		fields = append(fields, bson.E{Key: "price", Value: *p.Price})
	}
	if p.Category != nil {
		fields = append(fields, bson.E{Key: "category", Value: *p.Category})
	}
	if p.Options != nil {
		fields = append(fields, bson.E{Key: "options", Value: *p.Options})
	}
	if p.Available != nil {
		fields = append(fields, bson.E{Key: "available", Value: *p.Available})
	}
	if p.Image != nil {
		fields = append(fields, bson.E{Key: "image", Value: toAssetDocument(p.Image)})
	}
	return fields
}
