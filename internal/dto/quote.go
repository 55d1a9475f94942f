package dto

import "praktico/internal/domain"

type QuotePackage struct {
	LengthCm float64 `json:"lengthCm" validate:"gte=0,lte=500"`
	WidthCm  float64 `json:"widthCm" validate:"gte=0,lte=500"`
	HeightCm float64 `json:"heightCm" validate:"gte=0,lte=500"`
	WeightKg float64 `json:"weightKg" validate:"gte=0,lte=500"`
}

type QuoteRequest struct {
	OriginComuna      string       `json:"originComuna" validate:"max=100"`
	DestinationComuna string       `json:"destinationComuna" validate:"max=100"`
	Package           QuotePackage `json:"package"`
	DeclaredValueCLP  float64      `json:"declaredValueCLP" validate:"gte=0"`
}

type QuoteResponse struct {
	OK                bool                    `json:"ok"`
	Provider          string                  `json:"provider"`
	OriginComuna      string                  `json:"originComuna"`
	DestinationComuna string                  `json:"destinationComuna"`
	Options           []domain.ShippingOption `json:"options"`
	Recommended       *domain.ShippingOption  `json:"recommended"`
	Estimated         bool                    `json:"estimated"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK      bool               `json:"ok"`
	Error   string             `json:"error"`
	Details []ValidationDetail `json:"details,omitempty"`
	TraceID string             `json:"traceId,omitempty"`
}
