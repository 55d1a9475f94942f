package dto

import "praktico/internal/domain"

type CartLine struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=999"`
}

type CartParcelRequest struct {
	Items []CartLine `json:"items" validate:"required,min=1,max=50,dive"`
}

type CartParcelResponse struct {
	OK               bool          `json:"ok"`
	Parcel           domain.Parcel `json:"parcel"`
	HasAny           bool          `json:"hasAny"`
	DeclaredValueCLP int64         `json:"declaredValueCLP"`
	MissingProducts  []string      `json:"missingProducts,omitempty"`
}
