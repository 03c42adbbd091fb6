// Package client provides an HTTP client for the tenancy REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/evcraddock/rentdesk/internal/logging"
	"github.com/evcraddock/rentdesk/internal/tenancy"
)

const (
	pathAdminTenants     = "/api/admin/tenants"
	pathAdminRooms       = "/api/admin/rooms"
	pathAdminPayments    = "/api/admin/payments"
	pathAdminMaintenance = "/api/admin/maintenance"
	pathAdminVacate      = "/api/admin/vacate"
	pathTenantProfile    = "/api/tenant/profile"
	pathTenantPayments   = "/api/tenant/payments"
	pathTenantMaint      = "/api/tenant/maintenance"
	pathTenantVacate     = "/api/tenant/vacate"
)

// Observer receives the outcome of every API request.
// status is 0 when the request never produced a response.
type Observer interface {
	ObserveAPI(method, path string, status int, d time.Duration)
}

// Client is an HTTP client for the tenancy API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	observer   Observer
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithObserver reports request outcomes to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New creates a new API client.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		tracer:     otel.Tracer("github.com/evcraddock/rentdesk/internal/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTenants returns all tenants with their assigned rooms.
func (c *Client) ListTenants(ctx context.Context) ([]tenancy.Tenant, error) {
	var tenants []tenancy.Tenant
	if err := c.get(ctx, pathAdminTenants, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// CreateTenant creates a tenant from the add-tenant form fields.
func (c *Client) CreateTenant(ctx context.Context, fields map[string]string) error {
	return c.send(ctx, http.MethodPost, pathAdminTenants, fields, nil)
}

// ListRooms returns all rooms.
func (c *Client) ListRooms(ctx context.Context) ([]tenancy.Room, error) {
	var rooms []tenancy.Room
	if err := c.get(ctx, pathAdminRooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListPayments returns all payments, filtered to month when it is not empty.
func (c *Client) ListPayments(ctx context.Context, month string) ([]tenancy.Payment, error) {
	path := pathAdminPayments
	if month != "" {
		path += "?" + url.Values{"month": {month}}.Encode()
	}

	var payments []tenancy.Payment
	if err := c.get(ctx, path, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListMaintenance returns every tenant's maintenance requests.
func (c *Client) ListMaintenance(ctx context.Context) ([]tenancy.MaintenanceRequest, error) {
	var requests []tenancy.MaintenanceRequest
	if err := c.get(ctx, pathAdminMaintenance, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateMaintenance sets the status of a maintenance request.
func (c *Client) UpdateMaintenance(ctx context.Context, id, status string) error {
	body := map[string]string{"id": id, "status": status}
	return c.send(ctx, http.MethodPut, pathAdminMaintenance, body, nil)
}

// ListVacateRequests returns every tenant's vacate requests.
func (c *Client) ListVacateRequests(ctx context.Context) ([]tenancy.VacateRequest, error) {
	var requests []tenancy.VacateRequest
	if err := c.get(ctx, pathAdminVacate, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateVacate sets the status of a vacate request.
func (c *Client) UpdateVacate(ctx context.Context, id, status string) error {
	body := map[string]string{"id": id, "status": status}
	return c.send(ctx, http.MethodPut, pathAdminVacate, body, nil)
}

// Profile returns the signed-in tenant.
func (c *Client) Profile(ctx context.Context) (*tenancy.Tenant, error) {
	var t tenancy.Tenant
	if err := c.get(ctx, pathTenantProfile, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// MyPayments returns the signed-in tenant's payments.
func (c *Client) MyPayments(ctx context.Context) ([]tenancy.Payment, error) {
	var payments []tenancy.Payment
	if err := c.get(ctx, pathTenantPayments, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// MyMaintenance returns the signed-in tenant's maintenance requests.
func (c *Client) MyMaintenance(ctx context.Context) ([]tenancy.MaintenanceRequest, error) {
	var requests []tenancy.MaintenanceRequest
	if err := c.get(ctx, pathTenantMaint, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateMaintenance files a maintenance request from the form fields.
func (c *Client) CreateMaintenance(ctx context.Context, fields map[string]string) error {
	return c.send(ctx, http.MethodPost, pathTenantMaint, fields, nil)
}

// MyVacateRequests returns the signed-in tenant's vacate requests.
func (c *Client) MyVacateRequests(ctx context.Context) ([]tenancy.VacateRequest, error) {
	var requests []tenancy.VacateRequest
	if err := c.get(ctx, pathTenantVacate, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateVacate files a vacate request from the form fields.
func (c *Client) CreateVacate(ctx context.Context, fields map[string]string) error {
	return c.send(ctx, http.MethodPost, pathTenantVacate, fields, nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// send performs a request with a JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request with credentials and handles errors.
func (c *Client) do(req *http.Request, result interface{}) (err error) {
	ctx, span := c.tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	req = req.WithContext(ctx)
	c.authorize(req)
	if id := logging.RequestID(ctx); id != "" {
		req.Header.Set(logging.RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(req, 0, start)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "err", cerr)
		}
	}()
	c.observe(req, resp.StatusCode, start)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := errorField(respBody); msg != "" {
			return &APIError{Status: resp.StatusCode, Message: msg}
		}
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	// A 2xx body can still report a failure through its error field.
	if msg := errorField(respBody); msg != "" {
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// authorize relays the caller's credentials, falling back to the API key.
func (c *Client) authorize(req *http.Request) {
	creds := CredentialsFrom(req.Context())
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	switch {
	case creds.Authorization != "":
		req.Header.Set("Authorization", creds.Authorization)
	case c.apiKey != "":
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) observe(req *http.Request, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveAPI(req.Method, req.URL.Path, status, time.Since(start))
}

// errorField returns the body's top-level "error" value, or "" when absent.
func errorField(body []byte) string {
	var resp struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &resp) != nil {
		return ""
	}
	raw := bytes.TrimSpace(resp.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
