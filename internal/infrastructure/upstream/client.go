// Package upstream is the HTTP client for the microfinance REST API. It
// implements the auth, tenant and resource ports.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20
)

// Observer is told about every upstream round trip. Status is 0 when the
// request never got an answer.
type Observer func(operation string, status int, elapsed time.Duration)

type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	maxBody  int64
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithMaxBody caps the size of an upstream answer. Larger answers fail
// instead of being cut short.
func WithMaxBody(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		maxBody: maxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authEnvelope struct {
	Data struct {
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
		User struct {
			Name     string `json:"name"`
			RoleName string `json:"roleName"`
		} `json:"user"`
	} `json:"data"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, phoneNumber, password string) (ports.AuthResult, error) {
	body := map[string]string{"phoneNumber": phoneNumber, "password": password}
	return c.auth(ctx, "login", "/auth/login", body)
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (ports.AuthResult, error) {
	body := map[string]string{"refreshToken": refreshToken}
	return c.auth(ctx, "refresh", "/auth/refresh", body)
}

func (c *Client) auth(ctx context.Context, op, path string, payload any) (ports.AuthResult, error) {
	resp, err := c.postJSON(ctx, op, path, payload)
	if err != nil {
		return ports.AuthResult{}, err
	}
	if !success(resp.Status) {
		return ports.AuthResult{}, statusError(resp)
	}

	var env authEnvelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return ports.AuthResult{}, fmt.Errorf("%w: decode %s response: %v", domain.ErrNetwork, op, err)
	}
	return ports.AuthResult{
		AccessToken:  env.Data.Tokens.AccessToken,
		RefreshToken: env.Data.Tokens.RefreshToken,
		UserName:     env.Data.User.Name,
		RoleName:     env.Data.User.RoleName,
	}, nil
}

func (c *Client) CreateTenant(ctx context.Context, in ports.TenantInput) error {
	resp, err := c.postJSON(ctx, "tenant", "/tenants", in)
	if err != nil {
		return err
	}
	if !success(resp.Status) {
		return statusError(resp)
	}
	return nil
}

// Do sends req with a bearer token. Any HTTP answer, 401 included, is a
// response; only transport failures are errors.
func (c *Client) Do(ctx context.Context, req ports.ResourceRequest) (*ports.ResourceResponse, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)
	}

	return c.send(httpReq, "resource")
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any) (*ports.ResourceResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	return c.send(httpReq, op)
}

func (c *Client) send(req *http.Request, op string) (*ports.ResourceResponse, error) {
	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, c.maxBody+1))
	c.observe(op, res.StatusCode, start)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrNetwork, op, err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s response exceeds %d bytes", domain.ErrNetwork, op, c.maxBody)
	}

	return &ports.ResourceResponse{
		Status:      res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

func (c *Client) observe(op string, status int, start time.Time) {
	if c.observer != nil {
		c.observer(op, status, time.Since(start))
	}
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// statusError extracts the upstream "message" field. An unreadable body
// leaves Message empty so callers can apply their own fallback.
func statusError(resp *ports.ResourceResponse) error {
	var env errorEnvelope
	_ = json.Unmarshal(resp.Body, &env)
	return &domain.UpstreamError{Status: resp.Status, Message: env.Message}
}
