package nameapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/infrastructure/resilience"
)

const lookupOperation = "nameapi.name"

type Options struct {
	Timeout            time.Duration
	HTTPClient         *http.Client
	ResilienceExecutor *resilience.Executor
}

// Client talks to the name service: GET {base}/api/name/{query}?limit=N.
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string) *Client {
	return NewWithOptions(baseURL, Options{})
}

func NewWithOptions(baseURL string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		executor:   options.ResilienceExecutor,
	}
}

// Name looks up query. A limit of zero omits the parameter and lets the
// service apply its own default.
func (c *Client) Name(ctx context.Context, query string, limit int) (domain.NameResult, error) {
	var result domain.NameResult
	call := func(ctx context.Context) error {
		result = domain.NameResult{}
		return c.getJSON(ctx, c.nameURL(query, limit), &result)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, lookupOperation, call, classifyNameAPIError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.NameResult{}, wrapTemporaryIfNeeded(lookupOperation, err)
	}
	return result, nil
}

func (c *Client) nameURL(query string, limit int) string {
	u := c.baseURL + "/api/name/" + url.PathEscape(query)
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create name request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("name api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode name response: %w", err)
	}
	return nil
}
