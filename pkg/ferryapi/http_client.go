package ferryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://easy-ferry.uc.r.appspot.com"

const defaultTimeout = 15 * time.Second

// RequestIDHeader carries a per-request uuid.
const RequestIDHeader = "X-Request-ID"

// HTTPConfig configures the HTTP backend client.
type HTTPConfig struct {
	BaseURL    string
	Session    sales.SessionSource
	HTTPClient *http.Client
	Timeout    time.Duration
}

// HTTPClient talks to the ferry sales backend via its REST endpoints.
type HTTPClient struct {
	baseURL string
	session sales.SessionSource
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the live backend.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("ferryapi: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("ferryapi: invalid base url %q: %w", cfg.BaseURL, err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	session := cfg.Session
	if session == nil {
		session = sales.Session{}
	}
	return &HTTPClient{baseURL: base, session: session, client: httpClient}, nil
}

// FetchSales implements sales.SalesFetcher via GET /get-sales-ferry.
func (c *HTTPClient) FetchSales(ctx context.Context, query sales.SalesQuery) ([]sales.Sale, error) {
	params := url.Values{}
	params.Set("business", query.Business)
	params.Set("start_date", query.StartDate)
	params.Set("end_date", query.EndDate)
	resp, err := c.send(ctx, request{method: http.MethodGet, path: "/get-sales-ferry", query: params, token: c.token()})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ferryapi: read sales: %w: %w", sales.ErrTransport, err)
	}
	return decodeSales(body)
}

// DeleteSales implements sales.SalesDeleter via POST /delete-sales.
func (c *HTTPClient) DeleteSales(ctx context.Context, ids []int64) error {
	return c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/delete-sales",
		payload: deleteRequest{IDs: ids},
		token:   c.token(),
	}, nil)
}

// CreateSale implements sales.SaleWriter via POST /sales.
func (c *HTTPClient) CreateSale(ctx context.Context, input sales.SaleInput) error {
	input.ID = 0
	return c.do(ctx, request{method: http.MethodPost, path: "/sales", payload: input, token: c.token()}, nil)
}

// UpdateSale implements sales.SaleWriter via PUT /sales keyed by id.
func (c *HTTPClient) UpdateSale(ctx context.Context, input sales.SaleInput) error {
	if input.ID == 0 {
		return fmt.Errorf("ferryapi: update sale: %w: id is required", sales.ErrInvalidInput)
	}
	return c.do(ctx, request{method: http.MethodPut, path: "/sales", payload: input, token: c.token()}, nil)
}

// GenerateReport renders the manifest of one departure via POST /generate-report.
func (c *HTTPClient) GenerateReport(ctx context.Context, req sales.ReportRequest) (sales.File, error) {
	resp, err := c.send(ctx, request{method: http.MethodPost, path: "/generate-report", payload: req, token: c.token()})
	if err != nil {
		return sales.File{}, err
	}
	defer resp.Body.Close()
	fallback := fmt.Sprintf("reporte_%s_%s.xlsx", req.Business, req.Date)
	return readFile(resp, fallback)
}

// DownloadAllSales exports every sale of business via GET /get-all-sales.
func (c *HTTPClient) DownloadAllSales(ctx context.Context, business, format string) (sales.File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "xlsx"
	}
	params := url.Values{}
	params.Set("business", business)
	params.Set("format", format)
	resp, err := c.send(ctx, request{method: http.MethodGet, path: "/get-all-sales", query: params, token: c.token()})
	if err != nil {
		return sales.File{}, err
	}
	defer resp.Body.Close()
	return readFile(resp, fmt.Sprintf("ventas_%s.%s", business, format))
}

func (c *HTTPClient) token() string {
	return strings.TrimSpace(c.session.Current().Token)
}

type request struct {
	method  string
	path    string
	query   url.Values
	payload any
	token   string
}

type deleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (c *HTTPClient) do(ctx context.Context, r request, target any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &sales.DecodeError{Resource: strings.TrimPrefix(r.path, "/"), Err: err}
	}
	return nil
}

// send performs the request and returns the response for 2xx statuses. The
// caller owns the body.
func (c *HTTPClient) send(ctx context.Context, r request) (*http.Response, error) {
	var body io.Reader
	if r.payload != nil {
		data, err := json.Marshal(r.payload)
		if err != nil {
			return nil, fmt.Errorf("ferryapi: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("ferryapi: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ferryapi: %s %s: %w: %w", r.method, r.path, sales.ErrTransport, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, remoteError(resp)
	}
	return resp, nil
}

func remoteError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &sales.RemoteError{Status: resp.StatusCode, Message: remoteMessage(data)}
}

// remoteMessage extracts a human message from an error body: the JSON
// "message", "error" or "detail" field, or the trimmed plain text.
func remoteMessage(data []byte) string {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if value, ok := payload[key].(string); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
		return ""
	}
	if strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

// IsUnauthorized reports whether err is a 401/403 from the backend.
func IsUnauthorized(err error) bool {
	var remote *sales.RemoteError
	return errors.As(err, &remote) && remote.Unauthorized()
}
