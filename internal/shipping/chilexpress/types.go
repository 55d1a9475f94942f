package chilexpress

type ratePackage struct {
	Weight string `json:"weight"`
	Height string `json:"height"`
	Width  string `json:"width"`
	Length string `json:"length"`
}

type rateRequest struct {
	OriginCountyCode      string      `json:"originCountyCode"`
	DestinationCountyCode string      `json:"destinationCountyCode"`
	Package               ratePackage `json:"package"`
	ProductType           int         `json:"productType"`
	ContentType           int         `json:"contentType"`
	DeclaredWorth         string      `json:"declaredWorth"`
	DeliveryTime          int         `json:"deliveryTime"`
}

type rateOption struct {
	ServiceTypeCode    *int   `json:"serviceTypeCode"`
	ServiceDescription string `json:"serviceDescription"`
	ServiceValue       string `json:"serviceValue"`
	DeliveryType       *int   `json:"deliveryType"`
	FinalWeight        string `json:"finalWeight,omitempty"`
}

type rateResponse struct {
	Data *struct {
		CourierServiceOptions []rateOption `json:"courierServiceOptions"`
	} `json:"data"`
	StatusCode        *int     `json:"statusCode"`
	StatusDescription string   `json:"statusDescription"`
	Errors            []string `json:"errors"`
}

const (
	productTypeParcel = 3
	contentTypeGoods  = 1
	allDeliveryTimes  = 0
)
