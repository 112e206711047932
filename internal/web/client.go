package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/konstantinfoerster/deck-diff-go/internal/aio"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Config Upstream client settings. Delay is the minimum pause between two requests of the same client.
type Config struct {
	Delay      time.Duration `yaml:"delay"`
	Timeout    time.Duration `yaml:"timeout"`
	Retries    int           `yaml:"retries"`
	RetryOn    []int         `yaml:"retryOn"`
	RetryDelay time.Duration `yaml:"retryDelay"`
}

func (c Config) limit() rate.Limit {
	if c.Delay <= 0 {
		return rate.Inf
	}

	return rate.Every(c.Delay)
}

// Response The body must be closed by the caller.
type Response struct {
	Body     io.ReadCloser
	MimeType MimeType
}

// Client Fetches upstream resources, only 200 OK counts as success.
type Client interface {
	// Get requests url, accept is sent as Accept header if not empty.
	Get(ctx context.Context, url string, accept string) (*Response, error)
}

// NewClient creates a throttled client with retry support. If the config has a timeout it replaces the
// timeout of the given http client.
func NewClient(cfg Config, client *http.Client) Client {
	if client == nil {
		panic("missing net/http client")
	}
	if cfg.Timeout > 0 {
		c := *client
		c.Timeout = cfg.Timeout
		client = &c
	}

	return &httpClient{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(cfg.limit(), 1),
	}
}

type httpClient struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

func (c *httpClient) Get(ctx context.Context, url string, accept string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s %w", url, err)
	}
	req.Header.Set(HeaderUserAgent, DefaultUserAgent)
	if accept != "" {
		req.Header.Set(HeaderAccept, accept)
	}

	for attempt := 1; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("request to %s was cancelled %w", url, err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		if attempt > c.cfg.Retries || !IsStatusCode(err, c.cfg.RetryOn...) {
			return nil, err
		}

		log.Info().Err(err).Int("attempt", attempt).Msgf("Retrying request to %s", url)
		if err := pause(ctx, c.cfg.RetryDelay); err != nil {
			return nil, fmt.Errorf("retry of %s was cancelled %w", url, err)
		}
	}
}

func (c *httpClient) do(req *http.Request) (*Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed %w", req.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer aio.Close(resp.Body)

		return nil, NewHTTPErr(req.URL.String(), resp)
	}

	return &Response{
		Body:     resp.Body,
		MimeType: NewMimeType(resp.Header.Get(HeaderContentType)),
	}, nil
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
