package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/imgdl/internal/domain"
	"github.com/mmcdole/imgdl/internal/provider"
	"github.com/tidwall/gjson"
)

const (
	userAgent = "imgdl/1.0"

	// maxErrorBody caps how much of a failed response is kept for logging
	maxErrorBody = 512
)

// Client implements domain.Searcher for any provider.Definition
type Client struct {
	def        provider.Definition
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a search client for def.
// An empty endpoint uses the provider default.
func NewClient(def provider.Definition, apiKey, endpoint string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = def.Endpoint
	}
	return &Client{
		def:        def,
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return c.def.Name
}

// Search queries the provider and returns up to limit image URLs in response order.
// Fewer results than limit is not an error; an empty slice means nothing matched.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery, limit int) ([]string, error) {
	if query.IsEmpty() {
		return nil, domain.ErrEmptyQuery
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}

	req, err := c.buildRequest(ctx, query, limit)
	if err != nil {
		return nil, &domain.SearchError{Provider: c.def.Name, Err: err}
	}

	c.logger.Debug("search request",
		"provider", c.def.Name,
		"url", c.redact(req.URL),
		"query", query.String(),
		"limit", limit,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("search request failed", "provider", c.def.Name, "error", err)
		return nil, &domain.SearchError{Provider: c.def.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("search request error",
			"provider", c.def.Name,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, &domain.SearchError{
			Provider:   c.def.Name,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.SearchError{Provider: c.def.Name, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	urls, err := extractURLs(c.def, body, limit)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("search results", "provider", c.def.Name, "count", len(urls))
	return urls, nil
}

// buildRequest assembles the provider-specific GET request
func (c *Client) buildRequest(ctx context.Context, query domain.SearchQuery, limit int) (*http.Request, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}

	values := u.Query()
	values.Del(c.def.QueryParam)
	if c.def.Auth == provider.AuthQueryParam {
		values.Set(c.def.AuthParam, c.apiKey)
	}
	if c.def.PageSizeParam != "" {
		values.Set(c.def.PageSizeParam, strconv.Itoa(pageSize(c.def, limit)))
	}

	// The query term is appended raw so the provider separator survives encoding
	raw := values.Encode()
	if raw != "" {
		raw += "&"
	}
	u.RawQuery = raw + c.def.QueryParam + "=" + encodeQuery(query, c.def.Separator)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.def.Auth == provider.AuthHeader {
		req.Header.Set(c.def.AuthParam, c.apiKey)
	}

	return req, nil
}

// redact returns the request URL with the API key hidden
func (c *Client) redact(u *url.URL) string {
	if c.def.Auth != provider.AuthQueryParam {
		return u.String()
	}
	clone := *u
	values := clone.Query()
	if values.Has(c.def.AuthParam) {
		values.Set(c.def.AuthParam, "REDACTED")
	}
	clone.RawQuery = values.Encode()
	return clone.String()
}

// pageSize clamps limit into the provider's accepted page size range
func pageSize(def provider.Definition, limit int) int {
	n := limit
	if def.MinPageSize > 0 && n < def.MinPageSize {
		n = def.MinPageSize
	}
	if def.MaxPageSize > 0 && n > def.MaxPageSize {
		n = def.MaxPageSize
	}
	return n
}

// extractURLs walks the provider's results path and returns at most limit URLs.
// Every inspected item must carry a non-empty URL string at the item path.
func extractURLs(def provider.Definition, body []byte, limit int) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, &domain.ResponseFormatError{Provider: def.Name, Reason: "body is not valid JSON"}
	}

	// "hits.#.webformatURL" -> collection "hits", item path "webformatURL"
	collection, itemPath, _ := strings.Cut(def.ResultsPath, ".#")
	itemPath = strings.TrimPrefix(itemPath, ".")

	res := gjson.GetBytes(body, collection)
	if !res.IsArray() {
		return nil, &domain.ResponseFormatError{
			Provider: def.Name,
			Reason:   fmt.Sprintf("%q is missing or not an array", collection),
		}
	}

	items := res.Array()
	urls := make([]string, 0, min(limit, len(items)))
	for i, item := range items {
		if len(urls) == limit {
			break
		}

		value := item
		if itemPath != "" {
			value = item.Get(itemPath)
		}

		switch {
		case !value.Exists():
			return nil, &domain.ResponseFormatError{
				Provider: def.Name,
				Reason:   fmt.Sprintf("result %d has no %q", i, itemPath),
			}
		case value.Type != gjson.String:
			return nil, &domain.ResponseFormatError{
				Provider: def.Name,
				Reason:   fmt.Sprintf("result %d is %s, expected a URL string", i, value.Type),
			}
		case value.Str == "":
			return nil, &domain.ResponseFormatError{
				Provider: def.Name,
				Reason:   fmt.Sprintf("result %d has an empty URL", i),
			}
		}
		urls = append(urls, value.Str)
	}

	return urls, nil
}
