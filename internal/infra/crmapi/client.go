// Package crmapi is the HTTP client of the remote CRM. Every call is
// normalized into a domain.Envelope; no error ever reaches the caller.
package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("crmapi")

const (
	serviceName = "crm"

	// bodyLogLimit caps how much of a failed response body is logged.
	bodyLogLimit = 100
)

// Header names understood by the CRM.
const (
	HeaderLock = "X-CITADEL-LOCK"
	HeaderKey  = "X-CITADEL-KEY"
	HeaderID   = "X-CITADEL-ID"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Lock       string
	Key        string
	Resilience resilience.Config
}

// Client talks to the CRM on behalf of a session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	lock       string
	key        string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a new Client. metrics may be nil.
func NewClient(httpClient *http.Client, opts Options, cb *gobreaker.CircuitBreaker, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    opts.BaseURL,
		lock:       opts.Lock,
		key:        opts.Key,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(opts.Resilience.MaxConcurrency),
		cfg:        opts.Resilience,
		metrics:    metrics,
		logger:     logger,
	}
}

// BreakerIsSuccessful is the breaker's success predicate: a caller that
// went away says nothing about the CRM's health.
func BreakerIsSuccessful(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

type rawResponse struct {
	status int
	body   []byte
}

// Do sends method to path (relative to the base URL) with an optional JSON
// body and normalizes the outcome. A session without a user id fails with
// 401 before anything is sent.
func Do[T any](ctx context.Context, c *Client, sess *domain.Session, method, path string, body any) domain.Envelope[T] {
	target := joinURL(c.baseURL, path)

	if !sess.Valid() {
		c.logger.Warn("crm call without session",
			zap.String("method", method),
			zap.String("url", target),
		)
		return domain.Failed[T](http.StatusUnauthorized, domain.KindUnauthorized)
	}

	ctx, span := tracer.Start(ctx, "crm."+method)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", target),
	)

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			c.logger.Error("crm request body not encodable",
				zap.String("method", method),
				zap.String("url", target),
				zap.Error(err),
			)
			span.SetStatus(codes.Error, err.Error())
			return domain.Failed[T](http.StatusInternalServerError, domain.KindTransport)
		}
	}

	start := time.Now()
	resp, err := c.send(ctx, sess, method, target, payload)
	c.record(method, resp.status, time.Since(start))

	if err != nil {
		kind := domain.KindOf(err)
		c.logger.Error("crm request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", http.StatusInternalServerError),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		span.SetStatus(codes.Error, err.Error())
		return domain.Failed[T](http.StatusInternalServerError, kind)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.status))

	if resp.status < 200 || resp.status >= 300 {
		c.logger.Warn("crm request rejected",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.status),
			zap.String("body", truncate(string(resp.body), bodyLogLimit)),
		)
		span.SetStatus(codes.Error, http.StatusText(resp.status))
		return domain.Failed[T](resp.status, domain.KindRemote)
	}

	env, err := Normalize[T](resp.status, resp.body)
	if err != nil {
		c.logger.Error("crm response not decodable",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.status),
			zap.String("body", truncate(string(resp.body), bodyLogLimit)),
			zap.Error(err),
		)
		span.SetStatus(codes.Error, err.Error())
		return env
	}

	c.logger.Debug("crm request",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.status),
		zap.Int("items", len(env.Data)),
	)
	return env
}

// send performs the call inside the bulkhead and circuit breaker. GETs are
// retried on transport errors and 5xx; other methods are sent once. A
// response with any status is returned without error; err is set only
// when no usable response was obtained.
func (c *Client) send(ctx context.Context, sess *domain.Session, method, target string, payload []byte) (rawResponse, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return rawResponse{}, &domain.ErrExternalService{Service: serviceName, Err: err}
	}
	defer c.bulkhead.Release()

	var resp rawResponse
	_, err := c.cb.Execute(func() (any, error) {
		attempt := func() error {
			r, err := c.roundTrip(ctx, sess, method, target, payload)
			if err != nil {
				return err
			}
			resp = r
			if r.status >= 500 {
				return &domain.ErrExternalService{
					Service: serviceName,
					Status:  r.status,
					Err:     fmt.Errorf("crm returned status %d", r.status),
				}
			}
			return nil
		}

		if method != http.MethodGet {
			return nil, attempt()
		}
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, attempt)
	})

	if err != nil {
		var external *domain.ErrExternalService
		switch {
		case errors.As(err, &external) && external.Status != 0:
			return resp, nil
		case resilience.IsBreakerRejection(err):
			return rawResponse{}, &domain.ErrCircuitOpen{Service: serviceName}
		}
		return rawResponse{}, &domain.ErrExternalService{Service: serviceName, Err: err}
	}
	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, sess *domain.Session, method, target string, payload []byte) (rawResponse, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return rawResponse{}, resilience.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set(HeaderLock, c.lock)
	req.Header.Set(HeaderKey, c.key)
	req.Header.Set(HeaderID, sess.UserID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rawResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("read body: %w", err)
	}
	return rawResponse{status: resp.StatusCode, body: data}, nil
}

func (c *Client) record(method string, status int, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordCRMRequest(method, status, d)
}

// Ping checks that the CRM base URL answers. Any HTTP response counts as
// reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set(HeaderLock, c.lock)
	req.Header.Set(HeaderKey, c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.ErrExternalService{Service: serviceName, Err: err}
	}
	resp.Body.Close()
	return nil
}

// State reports the circuit breaker state, for health checks.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}
