// Package postgrest implements the record store over the Supabase REST API.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
)

// Client implements domain.RecordStore against a PostgREST endpoint.
type Client struct {
	key        string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a client for the project at projectURL (e.g.
// https://xyz.supabase.co) authenticated with an API key.
func NewClient(projectURL, key string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(projectURL, "/") + "/rest/v1",
		metrics: metrics,
		logger:  logger,
	}
}

// Select runs q and returns the matching rows.
func (c *Client) Select(ctx context.Context, q domain.Query) ([]json.RawMessage, error) {
	params := url.Values{"select": {"*"}}
	for _, f := range q.Filters {
		params.Add(f.Column, "eq."+f.Value)
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	resp, err := c.do(ctx, "select", http.MethodGet, c.collectionURL(q.Collection, params), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", q.Collection, err)
	}
	return rows, nil
}

// Insert writes one row into collection.
func (c *Client) Insert(ctx context.Context, collection string, p *domain.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	resp, err := c.do(ctx, "insert", http.MethodPost, c.collectionURL(collection, nil), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// CheckReadiness verifies the API answers with the configured key.
func (c *Client) CheckReadiness(ctx context.Context) error {
	_, err := c.Select(ctx, domain.Query{Collection: domain.CitiesCollection, Limit: 1})
	return err
}

func (c *Client) collectionURL(collection string, params url.Values) string {
	u := c.baseURL + "/" + url.PathEscape(collection)
	if len(params) == 0 {
		return u
	}
	// PostgREST does not read '+' as a space.
	return u + "?" + strings.ReplaceAll(params.Encode(), "+", "%20")
}

func (c *Client) do(ctx context.Context, op, method, fullURL string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.StoreRequests.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		c.metrics.StoreRequests.WithLabelValues(op, "error").Inc()
		berr := decodeError(resp)
		c.logger.Warn("record store rejected request",
			"op", op, "status", resp.StatusCode, "code", berr.Code, "error", berr.Message)
		return nil, berr
	}
	c.metrics.StoreRequests.WithLabelValues(op, "success").Inc()
	return resp, nil
}

// PostgREST error body.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func decodeError(resp *http.Response) *domain.BackendError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	berr := &domain.BackendError{Status: resp.StatusCode}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		berr.Code = body.Code
		berr.Message = body.Message
		return berr
	}
	berr.Message = strings.TrimSpace(string(raw))
	return berr
}
