package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const maxResponseSize = 1 << 20

var (
	ErrUnavailable      = errors.New("upstream unavailable")
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	ErrInvalidResponse  = errors.New("invalid upstream response")
)

type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   any
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Client is a JSON HTTP client for one upstream. Transport errors and 5xx
// answers count against a circuit breaker; while it is open calls fail fast
// with ErrUnavailable.
type Client struct {
	name       string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*Response]
}

func NewClient(name string, timeout time.Duration, settings BreakerSettings, logger *zap.Logger) *Client {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state changed",
					zap.String("upstream", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			}
		},
	})

	return &Client{
		name:       name,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

// Do sends the request and returns the raw response. Non-2xx answers are
// returned together with an ErrUnexpectedStatus error so callers can still
// inspect the body.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.breaker.Execute(func() (*Response, error) {
		return c.send(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s circuit open", ErrUnavailable, c.name)
		}
		return resp, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp, nil
}

// DoJSON sends the request and decodes a 2xx body into out.
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) send(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", c.name, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", c.name, err)
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: raw}
	if httpResp.StatusCode >= 500 {
		return resp, fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, httpResp.StatusCode)
	}

	return resp, nil
}
