package chilexpress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"praktico/internal/commons"
	"praktico/internal/domain"
	apperrors "praktico/internal/errors"
	"praktico/internal/infrastructure/httpclient"

	"go.uber.org/zap"
)

const (
	ProviderName = "chilexpress"

	defaultWeightKg    = 0.5
	defaultDimensionCm = 10
	defaultEtaDays     = 2

	estimateBaseCLP  = 3500
	estimatePerKgCLP = 800
	estimateName     = "ChileExpress estándar (estimado)"

	deliveryTypeHome   = "Domicilio"
	serviceTypeNormal  = "Normal"
	defaultServiceName = "Chilexpress"
)

var errNoOptions = errors.New("no courier options returned")

type Config struct {
	APIKey    string
	RatingURL string
}

// Adapter quotes through the Chilexpress rating API. Whenever the API cannot
// be used it answers with a single locally estimated option so checkout is
// never blocked.
type Adapter struct {
	cfg      Config
	client   *httpclient.Client
	coverage *CoverageTable
	logger   *zap.Logger
}

func NewAdapter(cfg Config, client *httpclient.Client, coverage *CoverageTable, logger *zap.Logger) *Adapter {
	return &Adapter{
		cfg:      cfg,
		client:   client,
		coverage: coverage,
		logger:   logger,
	}
}

func (a *Adapter) Name() string {
	return ProviderName
}

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResult, error) {
	origin := strings.TrimSpace(req.OriginComuna)
	destination := strings.TrimSpace(req.DestinationComuna)

	if origin == "" {
		return nil, apperrors.NewValidationError("Falta comuna de origen.", apperrors.ValidationDetail{Field: "originComuna", Message: "required"})
	}
	if destination == "" {
		return nil, apperrors.NewValidationError("Falta comuna de destino.", apperrors.ValidationDetail{Field: "destinationComuna", Message: "required"})
	}

	weight := req.Parcel.WeightKg
	if weight == 0 {
		weight = defaultWeightKg
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return nil, apperrors.NewValidationError("Peso del paquete inválido.", apperrors.ValidationDetail{Field: "package.weightKg", Message: "must be positive"})
	}

	parcel := domain.Parcel{
		LengthCm: dimensionOrDefault(req.Parcel.LengthCm),
		WidthCm:  dimensionOrDefault(req.Parcel.WidthCm),
		HeightCm: dimensionOrDefault(req.Parcel.HeightCm),
		WeightKg: weight,
	}
	declared := max(req.DeclaredValue, 0)

	result := &domain.QuoteResult{
		Provider:          ProviderName,
		OriginComuna:      origin,
		DestinationComuna: destination,
	}

	if a.cfg.APIKey != "" {
		originCode, ok := a.coverage.Lookup(origin)
		if !ok {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("Comuna de origen no encontrada en cobertura: %q.", origin),
				apperrors.ValidationDetail{Field: "originComuna", Message: "not covered"},
			)
		}
		destinationCode, ok := a.coverage.Lookup(destination)
		if !ok {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("Comuna de destino no encontrada en cobertura: %q.", destination),
				apperrors.ValidationDetail{Field: "destinationComuna", Message: "not covered"},
			)
		}

		options, err := a.rate(ctx, originCode, destinationCode, parcel, declared)
		if err == nil {
			result.Options = options
			result.Recommended = &result.Options[0]
			result.Kind = domain.QuoteKindQuoted
			return result, nil
		}

		a.logger.Warn("chilexpress rating unavailable, using estimate",
			zap.String("origin", originCode),
			zap.String("destination", destinationCode),
			zap.Error(err),
		)
	}

	result.Options = []domain.ShippingOption{estimate(origin, destination, weight)}
	result.Recommended = &result.Options[0]
	result.Kind = domain.QuoteKindEstimated

	return result, nil
}

func (a *Adapter) rate(ctx context.Context, originCode, destinationCode string, parcel domain.Parcel, declared int64) ([]domain.ShippingOption, error) {
	body := rateRequest{
		OriginCountyCode:      originCode,
		DestinationCountyCode: destinationCode,
		Package: ratePackage{
			Weight: strconv.FormatFloat(parcel.WeightKg, 'f', 2, 64),
			Height: strconv.Itoa(parcel.HeightCm),
			Width:  strconv.Itoa(parcel.WidthCm),
			Length: strconv.Itoa(parcel.LengthCm),
		},
		ProductType:   productTypeParcel,
		ContentType:   contentTypeGoods,
		DeclaredWorth: strconv.FormatInt(declared, 10),
		DeliveryTime:  allDeliveryTimes,
	}

	var resp rateResponse
	err := a.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    a.cfg.RatingURL,
		Header: http.Header{"Ocp-Apim-Subscription-Key": []string{a.cfg.APIKey}},
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("calling rating api: %w", err)
	}

	if resp.StatusCode != nil && *resp.StatusCode != 0 {
		return nil, fmt.Errorf("rating api status %d: %s", *resp.StatusCode, describe(resp))
	}

	if resp.Data == nil || len(resp.Data.CourierServiceOptions) == 0 {
		return nil, errNoOptions
	}

	options := make([]domain.ShippingOption, len(resp.Data.CourierServiceOptions))
	for i, opt := range resp.Data.CourierServiceOptions {
		options[i] = mapOption(i, opt)
	}

	return options, nil
}

func mapOption(idx int, opt rateOption) domain.ShippingOption {
	id := idx + 1
	if opt.ServiceTypeCode != nil {
		id = *opt.ServiceTypeCode
	}

	name, serviceType := defaultServiceName, serviceTypeNormal
	if opt.ServiceDescription != "" {
		name, serviceType = opt.ServiceDescription, opt.ServiceDescription
	}

	eta := defaultEtaDays
	if opt.DeliveryType != nil {
		eta = *opt.DeliveryType
	}

	var price int64
	if value, err := strconv.ParseFloat(strings.TrimSpace(opt.ServiceValue), 64); err == nil && !math.IsNaN(value) && !math.IsInf(value, 0) {
		price = int64(math.Round(value))
	}

	return domain.ShippingOption{
		ID:           id,
		Name:         name,
		DeliveryType: deliveryTypeHome,
		ServiceType:  serviceType,
		Price:        price,
		EtaDays:      eta,
	}
}

// estimate is the flat-rate option used when the rating API is not usable.
func estimate(origin, destination string, weightKg float64) domain.ShippingOption {
	eta := 2
	if commons.NormalizeComuna(origin) == commons.NormalizeComuna(destination) {
		eta = 1
	}

	return domain.ShippingOption{
		ID:           1,
		Name:         estimateName,
		DeliveryType: deliveryTypeHome,
		ServiceType:  serviceTypeNormal,
		Price:        int64(math.Round(estimateBaseCLP + weightKg*estimatePerKgCLP)),
		EtaDays:      eta,
	}
}

func dimensionOrDefault(cm int) int {
	if cm == 0 {
		return defaultDimensionCm
	}
	return max(cm, 1)
}

func describe(resp rateResponse) string {
	if resp.StatusDescription != "" {
		return resp.StatusDescription
	}
	if len(resp.Errors) > 0 {
		return strings.Join(resp.Errors, " ")
	}
	return "unknown error"
}
