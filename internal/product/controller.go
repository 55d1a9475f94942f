package product

import (
	"encoding/json"
	"net/http"

	"praktico/internal/dto"
	apperrors "praktico/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

type Controller struct {
	useCase  CartUseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewController(useCase CartUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase:  useCase,
		validate: dto.NewValidator(),
		logger:   logger,
	}
}

// HandleCartParcel handles POST /cart/parcel.
func (c *Controller) HandleCartParcel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	w.Header().Set("X-Trace-Id", traceID)

	var req dto.CartParcelRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "JSON inválido.", nil)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		c.writeError(w, traceID, http.StatusBadRequest, "Carrito inválido.", dto.ValidationDetails(err))
		return
	}

	lines := make([]CartLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	result, err := c.useCase.ResolveParcel(r.Context(), lines)
	if err != nil {
		logger.Error("resolve cart parcel failed", zap.Error(err))
		c.writeError(w, traceID, http.StatusInternalServerError, "No se pudo calcular el paquete.", nil)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.CartParcelResponse{
		OK:               true,
		Parcel:           result.Parcel,
		HasAny:           result.HasAny,
		DeclaredValueCLP: result.DeclaredValue,
		MissingProducts:  result.Missing,
	})
}

func (c *Controller) writeError(w http.ResponseWriter, traceID string, status int, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, dto.ErrorResponse{
		OK:      false,
		Error:   message,
		Details: details,
		TraceID: traceID,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
