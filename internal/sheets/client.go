package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-orders/internal/apperr"
	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var _ interfaces.OrderLog = (*Client)(nil)

// Client appends rows to a spreadsheet through the values:append endpoint.
type Client struct {
	baseURL   string
	sheetID   string
	rangeName string
	tokens    TokenSource
	http      *http.Client
	tracer    trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

func NewClient(baseURL, sheetID, rangeName string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sheetID:   sheetID,
		rangeName: rangeName,
		tokens:    tokens,
		http:      &http.Client{Timeout: 15 * time.Second},
		tracer:    noop.NewTracerProvider().Tracer("sheets"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type appendRequest struct {
	Values [][]any `json:"values"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// AppendRow appends one row. Missing sheet configuration and missing
// credentials are reported with messages the classifier recognises.
func (c *Client) AppendRow(ctx context.Context, row []any) error {
	ctx, span := c.tracer.Start(ctx, "sheets.append_row")
	defer span.End()
	span.SetAttributes(attribute.Int("row.columns", len(row)))

	err := c.appendRow(ctx, row)
	if err != nil {
		metrics.AppendAttempts.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		return err
	}
	metrics.AppendAttempts.WithLabelValues("success").Inc()
	span.SetStatus(codes.Ok, "row appended")
	return nil
}

func (c *Client) appendRow(ctx context.Context, row []any) error {
	if c.sheetID == "" {
		return fmt.Errorf("order sheet is not configured")
	}

	token := ""
	if c.tokens != nil {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("not authenticated: read access token: %w", err)
		}
		token = t
	}
	if token == "" {
		return fmt.Errorf("not authenticated: sign in to submit orders")
	}

	body, err := json.Marshal(appendRequest{Values: [][]any{row}})
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS",
		c.baseURL, url.PathEscape(c.sheetID), url.PathEscape(c.rangeName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("network request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &apperr.StatusError{Status: resp.StatusCode, Message: errorMessage(raw)}
}

func errorMessage(raw []byte) string {
	var e apiError
	if err := json.Unmarshal(raw, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
