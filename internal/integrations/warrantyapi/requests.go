package warrantyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	apperrors "warranty-console/pkg/errors"
)

const maxBodySize = 64 << 20

// fetchData performs a GET and returns the raw body. Transport failures and
// 5xx answers are retried; the final failure is ErrUpstreamUnavailable.
func (p *Provider) fetchData(ctx context.Context, token, endpoint string) ([]byte, error) {
	var body []byte
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		raw, err := p.do(ctx, token, http.MethodGet, endpoint, nil)
		if err != nil {
			var httpErr *apperrors.HttpError
			if errors.As(err, &httpErr) {
				return err
			}
			p.logger.Warn("upstream request failed, retrying",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		body = raw
		return nil
	})
	if err != nil {
		return nil, upstreamError(err)
	}
	return body, nil
}

// send performs a mutating request once; mutations are never retried.
func (p *Provider) send(ctx context.Context, token, method, endpoint string, payload interface{}) error {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	raw, err := p.do(ctx, token, method, endpoint, reader)
	if err != nil {
		return upstreamError(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || !env.ok() {
		return apperrors.NewHttpError(http.StatusUnprocessableEntity, or(env.reason(), apperrors.ErrUpstreamRejected.Error()), apperrors.ErrUpstreamRejected, map[string]interface{}{"endpoint": endpoint})
	}
	p.logger.Info("upstream mutation done",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)
	return nil
}

// do executes one request. A 4xx answer becomes an HttpError carrying the
// upstream message and status; a 5xx answer is a plain error.
func (p *Provider) do(ctx context.Context, token, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%s %s: status %d", method, endpoint, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return nil, apperrors.NewHttpError(resp.StatusCode, or(env.reason(), http.StatusText(resp.StatusCode)), apperrors.ErrUpstreamRejected, map[string]interface{}{"endpoint": endpoint})
	}
	return raw, nil
}

func (p *Provider) backoff() retry.Backoff {
	delay := p.retryDelay
	if delay <= 0 {
		delay = 1
	}
	return retry.WithMaxRetries(p.maxRetries, retry.NewExponential(delay))
}

// upstreamError keeps HttpErrors and context cancellation, and reports
// everything else as an unavailable upstream.
func upstreamError(err error) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
}

func or(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
