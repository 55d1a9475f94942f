package product

import "praktico/internal/domain"

type CartLine struct {
	ProductID string
	Quantity  int
}

// CartParcel is a cart resolved against the catalog. Missing lists ids that
// are unknown or sold out, in request order.
type CartParcel struct {
	Parcel        domain.Parcel
	HasAny        bool
	DeclaredValue int64
	Missing       []string
}
