// Package source fetches journal rows from the document-database API
// and flattens them into raw tables.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"edge-analysis/internal/config"
	"edge-analysis/internal/errors"
	"edge-analysis/internal/logging"
	"edge-analysis/internal/models"
	"edge-analysis/internal/performance"
	"edge-analysis/internal/resilience"
	"edge-analysis/pkg/utils"
)

const apiVersion = "2022-06-28"

// Client queries a document-database collection page by page.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	pageSize   int
	limiter    *performance.RateLimiter
	breaker    *resilience.CircuitBreaker
	retry      utils.RetryConfig
	logger     zerolog.Logger
}

// NewClient creates a new source client.
func NewClient(cfg config.SourceConfig, token string, logger zerolog.Logger) *Client {
	rate := cfg.RateLimit
	if rate <= 0 {
		rate = 3.0
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      token,
		pageSize:   pageSize,
		limiter:    performance.NewRateLimiter(rate, 1),
		breaker:    resilience.NewCircuitBreaker("source", resilience.DefaultCircuitBreakerConfig()),
		retry:      utils.DefaultRetryConfig(),
		logger:     logger,
	}
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []record `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`
}

type record struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

// FetchCollection pulls every page of the collection and flattens the
// records into a raw table. Headers are the union of property names,
// taken in sorted order per record so the union is deterministic.
func (c *Client) FetchCollection(ctx context.Context, collectionID string) (*models.RawTable, error) {
	if c.token == "" {
		return nil, errors.ErrNotAuthenticated
	}
	if collectionID == "" {
		return nil, errors.ErrCollectionNotSet
	}

	table := &models.RawTable{}
	seen := make(map[string]bool)
	cursor := ""

	for page := 1; ; page++ {
		resp, err := c.queryPage(ctx, collectionID, cursor)
		if err != nil {
			return nil, err
		}
		logging.LogFetchPage(c.logger, collectionID, page, len(resp.Results))

		for _, rec := range resp.Results {
			row := flattenProperties(rec.Properties)
			for _, h := range propertyOrder(rec.Properties) {
				if !seen[h] {
					seen[h] = true
					table.Headers = append(table.Headers, h)
				}
			}
			table.Rows = append(table.Rows, row)
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return table, nil
}

func (c *Client) queryPage(ctx context.Context, collectionID, cursor string) (*queryResponse, error) {
	return utils.RetryWithResult(ctx, c.retry, func() (*queryResponse, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return resilience.ExecuteWithResult(c.breaker, func() (*queryResponse, error) {
			return c.doQuery(ctx, collectionID, cursor)
		})
	})
}

func (c *Client) doQuery(ctx context.Context, collectionID, cursor string) (*queryResponse, error) {
	body, err := json.Marshal(queryRequest{PageSize: c.pageSize, StartCursor: cursor})
	if err != nil {
		return nil, errors.Wrap(err, "encoding query")
	}

	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building query request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(collectionID, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.NewFetchError(collectionID, resp.StatusCode, "too many requests", errors.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewFetchError(collectionID, resp.StatusCode, strings.TrimSpace(string(msg)), nil)
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.NewFetchError(collectionID, resp.StatusCode, "decoding response", err)
	}
	return &out, nil
}
