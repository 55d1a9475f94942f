package starken

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"praktico/internal/commons"
	"praktico/internal/domain"
	apperrors "praktico/internal/errors"
	"praktico/internal/infrastructure/httpclient"

	"go.uber.org/zap"
)

const (
	ProviderName = "starken"

	tokenPath      = "/quote/limitRequest/obtenerUUID/"
	localitiesPath = "/agency/agencyDls/localidades"
	quotePath      = "/quote/new-cotizador/multiple/"

	quoteStatusOK = 200

	deliveryTypeHome  = "DOMICILIO"
	serviceTypeNormal = "NORMAL"
)

type Config struct {
	BaseURL string
}

// Adapter quotes through the Starken public quoting API: a session uuid is
// fetched on every quote, the locality table is served from the cache when
// fresh, and comunas must match a locality exactly.
type Adapter struct {
	cfg    Config
	client *httpclient.Client
	cache  LocalityCache
	logger *zap.Logger
}

func NewAdapter(cfg Config, client *httpclient.Client, cache LocalityCache, logger *zap.Logger) *Adapter {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Adapter{
		cfg:    cfg,
		client: client,
		cache:  cache,
		logger: logger,
	}
}

func (a *Adapter) Name() string {
	return ProviderName
}

func (a *Adapter) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResult, error) {
	origin := strings.TrimSpace(req.OriginComuna)
	destination := strings.TrimSpace(req.DestinationComuna)

	if err := validate(origin, destination, req); err != nil {
		return nil, err
	}

	token, err := a.fetchToken(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError(ProviderName, "No se pudo obtener UUID de Starken.", err)
	}

	localities, err := a.localities(ctx, token)
	if err != nil {
		return nil, apperrors.NewUpstreamError(ProviderName, "No se pudo cargar localidades de Starken.", err)
	}

	originCode, ok := findCityCode(localities, origin)
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Comuna de origen no encontrada: %q.", origin),
			apperrors.ValidationDetail{Field: "originComuna", Message: "unknown locality"},
		)
	}
	destinationCode, ok := findCityCode(localities, destination)
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Comuna de destino no encontrada: %q.", destination),
			apperrors.ValidationDetail{Field: "destinationComuna", Message: "unknown locality"},
		)
	}

	body := quoteRequest{
		CodigoCiudadOrigen:  originCode,
		CodigoCiudadDestino: destinationCode,
		Encargos: []parcelLine{{
			Alto:  req.Parcel.HeightCm,
			Largo: req.Parcel.LengthCm,
			Ancho: req.Parcel.WidthCm,
			Kilos: req.Parcel.WeightKg,
		}},
		ValorDeclarado: req.DeclaredValue,
		UUID:           token,
	}

	var resp quoteResponse
	if err := a.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    a.cfg.BaseURL + quotePath,
		Body:   body,
	}, &resp); err != nil {
		return nil, apperrors.NewUpstreamError(ProviderName, "No se pudo cotizar el envío.", err)
	}
	if resp.Status != quoteStatusOK {
		return nil, apperrors.NewUpstreamError(ProviderName, "No se pudo cotizar el envío.", fmt.Errorf("quote status %d", resp.Status))
	}

	var options []domain.ShippingOption
	if resp.Data != nil {
		options = make([]domain.ShippingOption, len(resp.Data.Tarifa))
		for i, t := range resp.Data.Tarifa {
			options[i] = domain.ShippingOption{
				ID:             t.IDTarifa,
				Name:           t.Nombre,
				DeliveryType:   t.TipoEntrega,
				ServiceType:    t.TipoServicio,
				Price:          int64(math.Round(t.Tarifa)),
				EtaDays:        t.DiasEntrega,
				PaymentType:    t.TipoPago,
				CommitmentDate: t.FechaCompromiso,
			}
		}
	}

	return &domain.QuoteResult{
		Provider:          ProviderName,
		OriginComuna:      origin,
		DestinationComuna: destination,
		Options:           options,
		Recommended:       Recommend(options),
		Kind:              domain.QuoteKindQuoted,
	}, nil
}

// Recommend prefers home delivery with normal service, then any home
// delivery, then the first option. Courier order is kept; prices are not
// compared.
func Recommend(options []domain.ShippingOption) *domain.ShippingOption {
	for i := range options {
		if options[i].DeliveryType == deliveryTypeHome && options[i].ServiceType == serviceTypeNormal {
			return &options[i]
		}
	}
	for i := range options {
		if options[i].DeliveryType == deliveryTypeHome {
			return &options[i]
		}
	}
	if len(options) > 0 {
		return &options[0]
	}
	return nil
}

func validate(origin, destination string, req domain.QuoteRequest) error {
	if origin == "" {
		return apperrors.NewValidationError("Falta comuna de origen.", apperrors.ValidationDetail{Field: "originComuna", Message: "required"})
	}
	if destination == "" {
		return apperrors.NewValidationError("Falta comuna de destino.", apperrors.ValidationDetail{Field: "destinationComuna", Message: "required"})
	}
	if req.DeclaredValue <= 0 {
		return apperrors.NewValidationError("Valor declarado inválido.", apperrors.ValidationDetail{Field: "declaredValueCLP", Message: "must be positive"})
	}

	p := req.Parcel
	weightOK := !math.IsNaN(p.WeightKg) && !math.IsInf(p.WeightKg, 0) && p.WeightKg > 0
	if p.LengthCm <= 0 || p.WidthCm <= 0 || p.HeightCm <= 0 || !weightOK {
		return apperrors.NewValidationError("Datos del paquete inválidos.", apperrors.ValidationDetail{Field: "package", Message: "dimensions and weight must be positive"})
	}

	return nil
}

func (a *Adapter) fetchToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := a.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    a.cfg.BaseURL + tokenPath,
	}, &resp); err != nil {
		return "", err
	}
	if resp.UUIDUser == "" {
		return "", errors.New("empty uuid_user")
	}
	return resp.UUIDUser, nil
}

func (a *Adapter) localities(ctx context.Context, token string) ([]Locality, error) {
	cached, err := a.cache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		a.logger.Warn("starken locality cache read failed", zap.Error(err))
	}

	var resp localitiesResponse
	if err := a.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    a.cfg.BaseURL + localitiesPath,
		Header: http.Header{"uuid": []string{token}},
	}, &resp); err != nil {
		return nil, err
	}

	localities := resp.Data
	if localities == nil {
		localities = []Locality{}
	}

	if err := a.cache.Set(ctx, localities); err != nil {
		a.logger.Warn("starken locality cache write failed", zap.Error(err))
	}

	a.logger.Info("starken localities refreshed", zap.Int("count", len(localities)))
	return localities, nil
}

func findCityCode(localities []Locality, comuna string) (int, bool) {
	key := commons.NormalizeComunaUpper(comuna)
	for _, l := range localities {
		if commons.NormalizeComunaUpper(l.Comuna) == key {
			return l.CityCode, l.CityCode != 0
		}
	}
	return 0, false
}
