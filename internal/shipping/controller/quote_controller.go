package controller

import (
	"context"
	"encoding/json"
	"math"
	"net/http"

	"praktico/internal/domain"
	"praktico/internal/dto"
	apperrors "praktico/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

type QuoteUseCase interface {
	Quote(ctx context.Context, courier string, req domain.QuoteRequest) (*domain.QuoteResult, error)
}

type QuoteController struct {
	useCase  QuoteUseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewQuoteController(useCase QuoteUseCase, logger *zap.Logger) *QuoteController {
	return &QuoteController{
		useCase:  useCase,
		validate: dto.NewValidator(),
		logger:   logger,
	}
}

func (c *QuoteController) Quote(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	w.Header().Set("X-Trace-Id", traceID)

	courier := chi.URLParam(r, "courier")

	var req dto.QuoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "JSON inválido.", nil)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		c.writeError(w, traceID, http.StatusBadRequest, "Datos de cotización inválidos.", dto.ValidationDetails(err))
		return
	}

	result, err := c.useCase.Quote(r.Context(), courier, toQuoteRequest(req))
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	options := result.Options
	if options == nil {
		options = []domain.ShippingOption{}
	}

	c.writeJSON(w, http.StatusOK, dto.QuoteResponse{
		OK:                true,
		Provider:          result.Provider,
		OriginComuna:      result.OriginComuna,
		DestinationComuna: result.DestinationComuna,
		Options:           options,
		Recommended:       result.Recommended,
		Estimated:         result.Estimated(),
	})
}

// toQuoteRequest rounds package measures to whole centimetres; zero keeps
// meaning "not provided".
func toQuoteRequest(req dto.QuoteRequest) domain.QuoteRequest {
	return domain.QuoteRequest{
		OriginComuna:      req.OriginComuna,
		DestinationComuna: req.DestinationComuna,
		Parcel: domain.Parcel{
			LengthCm: int(math.Round(req.Package.LengthCm)),
			WidthCm:  int(math.Round(req.Package.WidthCm)),
			HeightCm: int(math.Round(req.Package.HeightCm)),
			WeightKg: req.Package.WeightKg,
		},
		DeclaredValue: int64(math.Round(req.DeclaredValueCLP)),
	}
}

func (c *QuoteController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, traceID, http.StatusBadRequest, ve.Message, ve.Details)
		return
	}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, traceID, http.StatusNotFound, nf.Message, nil)
		return
	}

	if ue, ok := apperrors.IsUpstreamError(err); ok {
		logger.Warn("courier unavailable", zap.String("courier", ue.Provider), zap.Error(err))
		c.writeError(w, traceID, http.StatusBadGateway, ue.Message, nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "Error al cotizar.", nil)
}

func (c *QuoteController) writeError(w http.ResponseWriter, traceID string, status int, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, dto.ErrorResponse{
		OK:      false,
		Error:   message,
		Details: details,
		TraceID: traceID,
	})
}

func (c *QuoteController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
