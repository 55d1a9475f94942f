package shipping

import (
	"context"

	"praktico/internal/domain"
)

// Courier quotes a parcel between two comunas. Implementations return
// *apperrors.ValidationError for bad input or unknown comunas and
// *apperrors.UpstreamError when the courier cannot be used.
type Courier interface {
	Name() string
	Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResult, error)
}
