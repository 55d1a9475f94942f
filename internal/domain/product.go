package domain

import "time"

// ProductShipping holds the per-unit package measures used for quoting.
type ProductShipping struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
}

type Product struct {
	ID          string
	Slug        string
	Name        string
	Price       int64
	Description string
	SoldOut     bool
	Shipping    *ProductShipping
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
