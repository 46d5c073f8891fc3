package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/igbuch/fbRads/log"
)

// Default Graph API endpoint and version used when the caller does not
// override them.
const (
	DefaultBaseURL = "https://graph.facebook.com"
	DefaultVersion = "v19.0"
)

// Params are the request parameters for a single Graph API call.
type Params map[string]string

// Client issues requests against the Graph API.
type Client interface {
	Get(ctx context.Context, path string, params Params) ([]byte, error)
	Post(ctx context.Context, path string, params Params) ([]byte, error)
	Delete(ctx context.Context, path string, params Params) ([]byte, error)
}

// clientImpl is the private and default implementation of Client.
type clientImpl struct {
	baseURL     string
	version     string
	accessToken string

	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker

	attempts retry.Option
	delay    retry.Option

	log *log.Logger
}

// Ensure that clientImpl implements Client
var _ Client = (*clientImpl)(nil)

// ClientOptions configure a Client.
type ClientOptions struct {
	BaseURL string
	Version string

	RetryAttempts     uint
	RetryDelay        time.Duration
	RequestsPerSecond int
}

// NewClient makes a new Graph API client that authenticates with the given
// access token.
func NewClient(accessToken string, options ClientOptions, log *log.Logger) (Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("an access token is required")
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := options.Version
	if version == "" {
		version = DefaultVersion
	}

	attempts := options.RetryAttempts
	if attempts == 0 {
		attempts = 5
	}
	delay := options.RetryDelay
	if delay == 0 {
		delay = 1 * time.Second
	}
	requestsPerSecond := options.RequestsPerSecond
	if requestsPerSecond == 0 {
		requestsPerSecond = 10
	}

	breakerSettings := gobreaker.Settings{
		Name:    "graph-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}

	return &clientImpl{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		version:     version,
		accessToken: accessToken,

		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		breaker:    gobreaker.NewCircuitBreaker(breakerSettings),

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		log: log,
	}, nil
}

func (c *clientImpl) Get(ctx context.Context, path string, params Params) ([]byte, error) {
	return c.requestWithRetries(ctx, http.MethodGet, path, params)
}

func (c *clientImpl) Post(ctx context.Context, path string, params Params) ([]byte, error) {
	return c.requestWithRetries(ctx, http.MethodPost, path, params)
}

func (c *clientImpl) Delete(ctx context.Context, path string, params Params) ([]byte, error) {
	return c.requestWithRetries(ctx, http.MethodDelete, path, params)
}

func (c *clientImpl) requestWithRetries(ctx context.Context, method, path string, params Params) ([]byte, error) {
	var body []byte
	var err error

	err = retry.Do(func() error {
		body, err = c.request(ctx, method, path, params)
		return err
	}, c.delay, c.attempts, retry.Context(ctx), retry.RetryIf(isRetryable), retry.LastErrorOnly(true))

	return body, err
}

// private function without retries
func (c *clientImpl) request(ctx context.Context, method, path string, params Params) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	values.Set("access_token", c.accessToken)

	requestURL := fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, strings.TrimPrefix(path, "/"))

	var request *http.Request
	var err error
	if method == http.MethodPost {
		request, err = http.NewRequestWithContext(ctx, method, requestURL, strings.NewReader(values.Encode()))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		request, err = http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s?%s", requestURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.execute(request)
	})
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("graph request failed")
		return nil, err
	}

	return result.([]byte), nil
}

func (c *clientImpl) execute(request *http.Request) ([]byte, error) {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, parseErrorResponse(response.StatusCode, data)
	}

	return data, nil
}

// Retries make sense for transport failures and server-side errors. A 4xx
// means the request itself is wrong and will not get better.
func isRetryable(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}

	var apiError *Error
	if errors.As(err, &apiError) {
		return apiError.HTTPStatus >= 500 || apiError.HTTPStatus == http.StatusTooManyRequests
	}

	return true
}
