package model

// OrderForm carries raw checkout form values before validation.
type OrderForm struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	Landmark      string
	City          string
	Pincode       string
	PaymentMethod string
	Cart          string
	Total         string
	Screenshot    *Upload
}

// ProductForm carries raw catalog form values. Nil fields were not supplied.
type ProductForm struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	Options     *string
	Available   *string
	Image       *Upload
}
