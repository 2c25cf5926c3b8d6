// Package identity provides implementations of ports.IdentityStore: an HTTP
// client for the external identity service, and an in-memory store used in
// development wiring and tests.
package identity

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

	"github.com/rs/zerolog"

	"github.com/luxpos/cashier-admin/internal/api/metrics"
	"github.com/luxpos/cashier-admin/internal/core/domain"
	"github.com/luxpos/cashier-admin/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the identity service.
type Config struct {
	// BaseURL is the root of the identity service, e.g. https://auth.example.com.
	BaseURL string
	// ServiceKey is the privileged credential used for admin operations and
	// sent as the apikey on every request.
	ServiceKey string
	Timeout    time.Duration
}

// Client talks to the identity service's auth API. Session validation uses
// the caller's own token; identity create/delete use the service key.
type Client struct {
	baseURL    string
	serviceKey string
	httpc      *http.Client
	log        zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		httpc:      &http.Client{Timeout: timeout},
		log:        log,
	}
}

type userPayload struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	EmailConfirmedAt string `json:"email_confirmed_at"`
	UserMetadata     struct {
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"user_metadata"`
}

func (p *userPayload) toIdentity() *domain.Identity {
	return &domain.Identity{
		ID:            p.ID,
		Email:         p.Email,
		Name:          p.UserMetadata.Name,
		Role:          domain.Role(p.UserMetadata.Role),
		EmailVerified: p.EmailConfirmedAt != "",
	}
}

// ValidateSession exchanges a bearer token for the identity it belongs to.
func (c *Client) ValidateSession(ctx context.Context, token string) (*domain.Identity, error) {
	defer observe("validate_session", time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("validate session: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validate session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrInvalidToken
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("validate session: decode response: %w", err)
	}
	if payload.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	return payload.toIdentity(), nil
}

// CreateIdentity registers a new identity via the admin API. Rejections are
// returned as *domain.StoreError carrying the service's own message.
func (c *Client) CreateIdentity(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	defer observe("create_identity", time.Now())

	body, err := json.Marshal(map[string]any{
		"email":         in.Email,
		"password":      in.Password,
		"email_confirm": in.EmailVerified,
		"user_metadata": map[string]string{
			"name": in.Name,
			"role": string(in.Role),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/admin/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}
	c.setAdminHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.storeError(resp)
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("create identity: decode response: %w", err)
	}
	return payload.toIdentity(), nil
}

// DeleteIdentity removes the identity with the given id via the admin API.
func (c *Client) DeleteIdentity(ctx context.Context, id string) error {
	defer observe("delete_identity", time.Now())

	endpoint := c.baseURL + "/auth/v1/admin/users/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	c.setAdminHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.storeError(resp)
	}
	return nil
}

// Health probes the identity service's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/health", nil)
	if err != nil {
		return fmt.Errorf("identity health: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("identity health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity health: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) setAdminHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
}

// storeError extracts the service's error message from a non-2xx response.
// Different endpoints report the message under different keys.
func (c *Client) storeError(resp *http.Response) error {
	var payload struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		_ = json.Unmarshal(body, &payload)
	}

	msg := payload.Msg
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = payload.ErrorDescription
	}
	if msg == "" {
		msg = fmt.Sprintf("identity service returned status %d", resp.StatusCode)
	}

	c.log.Debug().Int("status", resp.StatusCode).Str("message", msg).Msg("identity service rejection")
	return &domain.StoreError{Message: msg}
}

func observe(op string, start time.Time) {
	metrics.IdentityRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
