package parcel

import (
	"math"

	"praktico/internal/domain"
)

const (
	DefaultBaselineCm = 10
	// FallbackWeightKg is charged per unit for products without shipping data.
	FallbackWeightKg = 0.3

	minDimensionCm = 1
	minWeightKg    = 0.1
)

type options struct {
	baselineCm float64
}

type Option func(*options)

// WithBaseline sets the smallest box the aggregate starts from. Zero lets
// item dimensions alone decide.
func WithBaseline(cm float64) Option {
	return func(o *options) {
		if cm >= 0 {
			o.baselineCm = cm
		}
	}
}

// Aggregate reduces cart lines into one parcel: each dimension is the
// maximum across items and the weight is the sum of unit weight times
// quantity. Items are assumed to stack inside the largest box.
func Aggregate(items []domain.CartItem, opts ...Option) domain.Parcel {
	o := options{baselineCm: DefaultBaselineCm}
	for _, opt := range opts {
		opt(&o)
	}

	length, width, height := o.baselineCm, o.baselineCm, o.baselineCm
	weight := 0.0

	for _, item := range items {
		qty := float64(item.Quantity)
		s := item.Product.Shipping
		if s == nil {
			weight += FallbackWeightKg * qty
			continue
		}

		length = math.Max(length, finiteOrZero(s.LengthCm))
		width = math.Max(width, finiteOrZero(s.WidthCm))
		height = math.Max(height, finiteOrZero(s.HeightCm))
		weight += finiteOrZero(s.WeightKg) * qty
	}

	return domain.Parcel{
		LengthCm: roundDimension(length),
		WidthCm:  roundDimension(width),
		HeightCm: roundDimension(height),
		WeightKg: math.Max(minWeightKg, math.Round(weight*100)/100),
	}
}

func roundDimension(cm float64) int {
	return max(minDimensionCm, int(math.Round(cm)))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
