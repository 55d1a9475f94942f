package shipping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"praktico/internal/domain"
	apperrors "praktico/internal/errors"
	"praktico/internal/metrics"

	"go.uber.org/zap"
)

type QuoteRecorder interface {
	RecordQuote(courier, outcome string, duration time.Duration)
}

// QuoteService routes a quote request to the courier selected by name.
type QuoteService struct {
	couriers map[string]Courier
	recorder QuoteRecorder
	logger   *zap.Logger
	now      func() time.Time

	defaultOrigin string
}

type QuoteServiceOption func(*QuoteService)

// WithDefaultOrigin sets the origin comuna used when a request leaves it
// blank, normally the store's own comuna.
func WithDefaultOrigin(comuna string) QuoteServiceOption {
	return func(s *QuoteService) {
		s.defaultOrigin = strings.TrimSpace(comuna)
	}
}

func NewQuoteService(couriers []Courier, recorder QuoteRecorder, logger *zap.Logger, opts ...QuoteServiceOption) *QuoteService {
	byName := make(map[string]Courier, len(couriers))
	for _, c := range couriers {
		byName[c.Name()] = c
	}

	s := &QuoteService{
		couriers: byName,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QuoteService) Quote(ctx context.Context, courierName string, req domain.QuoteRequest) (*domain.QuoteResult, error) {
	courier, ok := s.couriers[strings.ToLower(courierName)]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("courier %q not supported", courierName))
	}

	if strings.TrimSpace(req.OriginComuna) == "" {
		req.OriginComuna = s.defaultOrigin
	}

	start := s.now()
	result, err := courier.Quote(ctx, req)
	elapsed := s.now().Sub(start)

	outcome := metrics.QuoteOutcomeQuoted
	switch {
	case err != nil:
		outcome = metrics.QuoteOutcomeFailed
	case result.Estimated():
		outcome = metrics.QuoteOutcomeEstimated
	}
	if s.recorder != nil {
		s.recorder.RecordQuote(courier.Name(), outcome, elapsed)
	}

	if err != nil {
		if _, isValidation := apperrors.IsValidationError(err); !isValidation {
			s.logger.Error("courier quote failed",
				zap.String("courier", courier.Name()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.logger.Info("courier quote served",
		zap.String("courier", courier.Name()),
		zap.String("kind", result.Kind.String()),
		zap.Int("options", len(result.Options)),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}
