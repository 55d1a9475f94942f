package domain

// Parcel is the single package a cart is shipped in.
type Parcel struct {
	LengthCm int     `json:"lengthCm"`
	WidthCm  int     `json:"widthCm"`
	HeightCm int     `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
}

type ShippingOption struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	DeliveryType   string  `json:"deliveryType"`
	ServiceType    string  `json:"serviceType"`
	Price          int64   `json:"price"`
	EtaDays        int     `json:"etaDays"`
	PaymentType    *string `json:"paymentType,omitempty"`
	CommitmentDate *string `json:"commitmentDate,omitempty"`
}

type QuoteRequest struct {
	OriginComuna      string
	DestinationComuna string
	Parcel            Parcel
	DeclaredValue     int64
}

// QuoteKind tells a real courier quote apart from a locally computed estimate.
type QuoteKind int

const (
	QuoteKindQuoted QuoteKind = iota
	QuoteKindEstimated
)

func (k QuoteKind) String() string {
	if k == QuoteKindEstimated {
		return "estimated"
	}
	return "quoted"
}

type QuoteResult struct {
	Provider          string
	OriginComuna      string
	DestinationComuna string
	Options           []ShippingOption
	Recommended       *ShippingOption
	Kind              QuoteKind
}

func (r QuoteResult) Estimated() bool {
	return r.Kind == QuoteKindEstimated
}
