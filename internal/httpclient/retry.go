package httpclient

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
	"github.com/aleister1102/companywatch/internal/config"
	"github.com/rs/zerolog"
)

// RetryHandler handles HTTP request retries with exponential backoff
type RetryHandler struct {
	maxRetries       int
	baseDelay        time.Duration
	maxDelay         time.Duration
	enableJitter     bool
	retryStatusCodes map[int]bool
	logger           zerolog.Logger
}

// RetryHandlerConfig configuration for retry handler
type RetryHandlerConfig struct {
	MaxRetries       int           `json:"max_retries"`
	BaseDelay        time.Duration `json:"base_delay"`
	MaxDelay         time.Duration `json:"max_delay"`
	EnableJitter     bool          `json:"enable_jitter"`
	RetryStatusCodes []int         `json:"retry_status_codes"`
}

// RetryHandlerConfigFrom converts the file-level retry settings
func RetryHandlerConfigFrom(cfg config.RetryConfig) RetryHandlerConfig {
	return RetryHandlerConfig{
		MaxRetries:       cfg.MaxRetries,
		BaseDelay:        cfg.BaseDelay(),
		MaxDelay:         cfg.MaxDelay(),
		EnableJitter:     cfg.EnableJitter,
		RetryStatusCodes: cfg.RetryStatusCodes,
	}
}

// NewRetryHandler creates a new retry handler
func NewRetryHandler(cfg RetryHandlerConfig, logger zerolog.Logger) *RetryHandler {
	statusCodeMap := make(map[int]bool, len(cfg.RetryStatusCodes))
	for _, code := range cfg.RetryStatusCodes {
		statusCodeMap[code] = true
	}

	maxDelay := cfg.MaxDelay
	if maxDelay < cfg.BaseDelay {
		maxDelay = cfg.BaseDelay
	}

	return &RetryHandler{
		maxRetries:       cfg.MaxRetries,
		baseDelay:        cfg.BaseDelay,
		maxDelay:         maxDelay,
		enableJitter:     cfg.EnableJitter,
		retryStatusCodes: statusCodeMap,
		logger:           logger.With().Str("component", "RetryHandler").Logger(),
	}
}

// ShouldRetry determines if a request should be retried based on status code
func (rh *RetryHandler) ShouldRetry(statusCode int, attempt int) bool {
	if attempt >= rh.maxRetries {
		return false
	}
	return rh.retryStatusCodes[statusCode]
}

// CalculateDelay returns baseDelay * 2^attempt, capped at maxDelay, plus up to 10% jitter
func (rh *RetryHandler) CalculateDelay(attempt int) time.Duration {
	delay := rh.baseDelay
	for i := 0; i < attempt && delay < rh.maxDelay; i++ {
		delay *= 2
	}
	if delay > rh.maxDelay {
		delay = rh.maxDelay
	}

	if rh.enableJitter {
		if spread := int64(delay / 10); spread > 0 {
			delay += time.Duration(rand.Int63n(spread))
		}
	}
	return delay
}

// WaitForRetry waits for the calculated delay before retrying
func (rh *RetryHandler) WaitForRetry(ctx context.Context, attempt int, reason string, url string) error {
	delay := rh.CalculateDelay(attempt)

	rh.logger.Warn().
		Str("url", url).
		Str("reason", reason).
		Int("attempt", attempt+1).
		Int("max_retries", rh.maxRetries).
		Dur("delay", delay).
		Msg("Request failed, waiting before retry")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DoWithRetry executes a request, retrying transport errors and configured status codes.
// Once attempts run out on a retryable status, the last response is returned with an *errorwrapper.HTTPError.
func (rh *RetryHandler) DoWithRetry(ctx context.Context, doFunc func(*HTTPRequest) (*HTTPResponse, error), req *HTTPRequest) (*HTTPResponse, error) {
	var lastResp *HTTPResponse
	var lastErr error

	for attempt := 0; attempt <= rh.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := doFunc(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr, lastResp = err, nil
			if attempt < rh.maxRetries {
				if waitErr := rh.WaitForRetry(ctx, attempt, err.Error(), req.URL); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			break
		}

		lastResp, lastErr = resp, nil
		if rh.ShouldRetry(resp.StatusCode, attempt) {
			if waitErr := rh.WaitForRetry(ctx, attempt, http.StatusText(resp.StatusCode), req.URL); waitErr != nil {
				return nil, waitErr
			}
			continue
		}
		break
	}

	if lastErr != nil {
		return nil, errorwrapper.WrapError(lastErr, "all retry attempts failed")
	}
	if lastResp != nil && rh.retryStatusCodes[lastResp.StatusCode] {
		err := errorwrapper.NewHTTPErrorWithURL(lastResp.StatusCode, snippet(lastResp.Body), req.URL)
		return lastResp, errorwrapper.WrapError(err, "all retry attempts failed")
	}
	return lastResp, nil
}
