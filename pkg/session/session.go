// Package session provides the authenticated HTTP transport used by every
// container-infra call: token injection, microversion negotiation headers,
// JSON encoding/decoding, typed API errors and bounded retries for
// idempotent requests.
package session

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/mensylisir/coexm/pkg/common"
	"github.com/mensylisir/coexm/pkg/logger"
	"github.com/mensylisir/coexm/pkg/version"
)

// TokenProvider supplies the value for the X-Auth-Token header. Implementations
// may fetch or refresh tokens; StaticToken covers the pre-issued case.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider wrapping a pre-issued token string.
type StaticToken string

func (t StaticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}

// Options configures a Session.
type Options struct {
	// Endpoint is the service base URL, e.g. "https://magnum.example:9511/v1".
	Endpoint string
	// TokenProvider supplies X-Auth-Token values. Nil means the endpoint is
	// unauthenticated (standalone or dev deployments).
	TokenProvider TokenProvider
	// APIVersion is the container-infra microversion sent on every request.
	// Defaults to common.DefaultAPIVersion.
	APIVersion string
	// UserAgent defaults to the build's version.UserAgent().
	UserAgent string
	// Timeout bounds a single HTTP exchange. Defaults to 30s.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts for idempotent requests
	// that fail with a retryable status or a transport error.
	MaxRetries int
	// Insecure disables server certificate verification.
	Insecure bool
	// CACertFile points at a PEM bundle appended to the system roots.
	CACertFile string
	// EnableMetrics wires the prometheus instrumentation into the transport.
	EnableMetrics bool
	// EnableTracing wraps the transport with otelhttp spans.
	EnableTracing bool
	// Logger defaults to the global logger.
	Logger *logger.Logger
	// Transport overrides the base RoundTripper, mainly for tests.
	Transport http.RoundTripper
}

// Session is a client for one container-infra endpoint. It is safe for
// concurrent use.
type Session struct {
	endpoint *url.URL
	opts     Options
	client   *http.Client
	log      *logger.Logger
}

// retryableStatuses are the upstream responses worth retrying on idempotent
// requests: throttling and transient gateway failures.
var retryableStatuses = sets.New(
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
)

// retryableMethods: only methods whose repetition cannot change state twice.
var retryableMethods = sets.New(http.MethodGet, http.MethodHead)

// New builds a Session from opts.
func New(opts Options) (*Session, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("session: endpoint cannot be empty")
	}
	endpoint, err := url.Parse(strings.TrimRight(opts.Endpoint, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "session: invalid endpoint '%s'", opts.Endpoint)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, errors.Errorf("session: endpoint scheme must be http or https, got '%s'", opts.Endpoint)
	}

	if opts.APIVersion == "" {
		opts.APIVersion = common.DefaultAPIVersion
	}
	if opts.UserAgent == "" {
		opts.UserAgent = version.UserAgent()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get()
	}

	transport, err := buildTransport(opts)
	if err != nil {
		return nil, err
	}

	return &Session{
		endpoint: endpoint,
		opts:     opts,
		client:   &http.Client{Transport: transport, Timeout: opts.Timeout},
		log:      opts.Logger,
	}, nil
}

func buildTransport(opts Options) (http.RoundTripper, error) {
	rt := opts.Transport
	if rt == nil {
		base := http.DefaultTransport.(*http.Transport).Clone()
		tlsConfig := &tls.Config{InsecureSkipVerify: opts.Insecure}
		if opts.CACertFile != "" {
			pool, err := x509.SystemCertPool()
			if err != nil {
				pool = x509.NewCertPool()
			}
			pem, err := os.ReadFile(opts.CACertFile)
			if err != nil {
				return nil, errors.Wrapf(err, "session: failed to read CA bundle '%s'", opts.CACertFile)
			}
			if !pool.AppendCertsFromPEM(pem) {
				return nil, errors.Errorf("session: no certificates found in '%s'", opts.CACertFile)
			}
			tlsConfig.RootCAs = pool
		}
		base.TLSClientConfig = tlsConfig
		rt = base
	}

	if opts.EnableMetrics {
		rt = instrumentRoundTripper(rt)
	}
	if opts.EnableTracing {
		rt = otelhttp.NewTransport(rt)
	}
	return rt, nil
}

// Endpoint returns the normalized base URL.
func (s *Session) Endpoint() string {
	return s.endpoint.String()
}

// APIVersion returns the microversion this session negotiates.
func (s *Session) APIVersion() string {
	return s.opts.APIVersion
}

// Get issues a GET and decodes the JSON response into out (which may be nil).
func (s *Session) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return s.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (s *Session) Post(ctx context.Context, path string, body, out interface{}) error {
	return s.do(ctx, http.MethodPost, path, nil, body, out)
}

// Patch issues a PATCH with a JSON-patch document body and decodes the
// response into out.
func (s *Session) Patch(ctx context.Context, path string, body, out interface{}) error {
	return s.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE and discards any response body.
func (s *Session) Delete(ctx context.Context, path string) error {
	return s.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (s *Session) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := s.urlFor(path, query)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "failed to encode request body for %s %s", method, u.Path)
		}
	}

	backoff := wait.Backoff{
		Duration: 250 * time.Millisecond,
		Factor:   2.0,
		Jitter:   0.1,
		Steps:    s.attemptsFor(method),
	}

	var lastErr error
	attempt := 0
	err := wait.ExponentialBackoffWithContext(ctx, backoff, func(ctx context.Context) (bool, error) {
		attempt++
		err := s.roundTrip(ctx, method, u, payload, out)
		if err == nil {
			return true, nil
		}
		if retryable(method, err) {
			lastErr = err
			if s.opts.EnableMetrics {
				retriesTotal.Inc()
			}
			s.log.Debugf("retrying %s %s (attempt %d): %v", method, u.Path, attempt, err)
			return false, nil
		}
		return false, err
	})
	if err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}

// attemptsFor returns the total tries for a method: non-idempotent requests
// get exactly one.
func (s *Session) attemptsFor(method string) int {
	if !retryableMethods.Has(method) || s.opts.MaxRetries <= 0 {
		return 1
	}
	return 1 + s.opts.MaxRetries
}

func retryable(method string, err error) bool {
	if !retryableMethods.Has(method) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retryableStatuses.Has(apiErr.StatusCode)
	}
	// Transport-level failure (connection refused, reset). The request never
	// completed, so repeating an idempotent method is safe.
	return true
}

func (s *Session) roundTrip(ctx context.Context, method string, u *url.URL, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return errors.Wrapf(err, "failed to build request %s %s", method, u.Path)
	}
	if err := s.setHeaders(ctx, req, payload != nil); err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %s %s failed", method, u.Path)
	}
	defer resp.Body.Close()

	requestID := resp.Header.Get(common.HeaderRequestID)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read response from %s %s", method, u.Path)
	}

	if resp.StatusCode >= 400 {
		return newAPIError(method, u.Path, resp.StatusCode, requestID, data)
	}

	if out != nil && len(data) > 0 && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrapf(err, "failed to decode response from %s %s", method, u.Path)
		}
	}
	return nil
}

func (s *Session) setHeaders(ctx context.Context, req *http.Request, hasBody bool) error {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.HeaderUserAgent, s.opts.UserAgent)
	req.Header.Set(common.HeaderAPIVersion, common.ServiceType+" "+s.opts.APIVersion)
	req.Header.Set(common.HeaderRequestID, "req-"+uuid.NewString())

	if s.opts.TokenProvider != nil {
		token, err := s.opts.TokenProvider.Token(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to obtain auth token")
		}
		if token != "" {
			req.Header.Set(common.HeaderAuthToken, token)
		}
	}
	return nil
}

func (s *Session) urlFor(path string, query url.Values) *url.URL {
	u := *s.endpoint
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return &u
}
