package client

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/telekom/kube-bearer/pkg/metrics"
	"github.com/telekom/kube-bearer/pkg/version"
)

const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"

	defaultTimeout = 30 * time.Second
)

// Client is an HTTP client bound to a base URL with a fixed set of default
// headers. It is not modified after New returns.
type Client struct {
	baseURL   string
	headers   map[string]string
	r         *resty.Client
	log       *zap.SugaredLogger
	requestID bool
	limiter   *rate.Limiter
}

type Option func(*Client) error

func New(opts ...Option) (*Client, error) {
	c := &Client{
		headers: map[string]string{"User-Agent": version.UserAgent()},
		r:       resty.New().SetTimeout(defaultTimeout),
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	c.r.SetBaseURL(c.baseURL).
		SetHeaders(c.headers).
		OnBeforeRequest(c.beforeRequest).
		OnAfterResponse(c.afterResponse).
		OnError(c.onError)
	return c, nil
}

// WithBaseURL sets the endpoint root. The string is kept verbatim; it is only
// rejected when net/url cannot parse it.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return errors.New("base URL is required")
		}
		if _, err := url.Parse(baseURL); err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithHeaders adds default headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) error {
		for k, v := range headers {
			c.headers[http.CanonicalHeaderKey(k)] = v
		}
		return nil
	}
}

// WithToken sets the bearer token. An empty token still yields "Bearer ".
func WithToken(token string) Option {
	return func(c *Client) error {
		c.headers[AuthorizationHeader] = BearerValue(token)
		return nil
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.headers["User-Agent"] = userAgent
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return fmt.Errorf("invalid timeout: %s", timeout)
		}
		c.r.SetTimeout(timeout)
		return nil
	}
}

func WithTLSConfig(caFile string, insecureSkipTLSVerify bool) Option {
	return func(c *Client) error {
		tlsConfig, err := loadTLSConfig(caFile, insecureSkipTLSVerify)
		if err != nil {
			return err
		}
		c.r.SetTLSClientConfig(tlsConfig)
		return nil
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) error {
		if log == nil {
			return nil
		}
		c.log = log
		c.r.SetLogger(log)
		return nil
	}
}

// WithRequestID tags every request with a fresh X-Request-ID.
func WithRequestID() Option {
	return func(c *Client) error {
		c.requestID = true
		return nil
	}
}

// WithRateLimit makes requests wait for a token bucket of rps requests per
// second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("invalid rate limit: %v/s burst %d", rps, burst)
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

func loadTLSConfig(caFile string, insecure bool) (*tls.Config, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: insecure}
	if caFile == "" {
		return tlsConfig, nil
	}
	data, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(data); !ok {
		return nil, errors.New("failed to parse CA file")
	}
	tlsConfig.RootCAs = pool
	return tlsConfig, nil
}

func BearerValue(token string) string {
	return "Bearer " + token
}

// BaseURL returns the base URL exactly as it was given.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Header returns a copy of the default headers.
func (c *Client) Header() http.Header {
	h := make(http.Header, len(c.headers))
	for k, v := range c.headers {
		h.Set(k, v)
	}
	return h
}

// Resty exposes the underlying resty client for requests the helpers do not cover.
func (c *Client) Resty() *resty.Client {
	return c.r
}

func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if c.requestID && req.Header.Get(RequestIDHeader) == "" {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	method := resp.Request.Method
	metrics.ClientRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode())).Inc()
	metrics.ClientRequestDuration.WithLabelValues(method).Observe(resp.Time().Seconds())
	c.log.Debugw("Request completed",
		"method", method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"requestID", resp.Request.Header.Get(RequestIDHeader),
		"duration", resp.Time())
	return nil
}

func (c *Client) onError(req *resty.Request, err error) {
	metrics.ClientRequests.WithLabelValues(req.Method, "error").Inc()
	c.log.Debugw("Request failed", "method", req.Method, "url", req.URL, "error", err)
}
