package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/luxpos/cashier-admin/internal/core/domain"
	"github.com/luxpos/cashier-admin/internal/core/ports"
	"github.com/luxpos/cashier-admin/internal/infrastructure/identity"
)

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	inserts  int
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *memProfileRepo) Insert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	stored := *p
	stored.CreatedAt = time.Now().UTC()
	r.profiles[stored.ID] = &stored
	return &stored, nil
}

func (r *memProfileRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

// TestRouter_CashierProvisioning exercises the full pipeline against the
// in-memory identity store: CORS preflight, authentication, authorization,
// validation, and both lifecycle operations. A single router instance is used
// throughout because the prometheus middleware registers its collectors with
// the default registry.
func TestRouter_CashierProvisioning(t *testing.T) {
	ctx := context.Background()

	identities := identity.NewMemory("test-signing-key")
	profiles := newMemProfileRepo()

	admin, err := identities.CreateIdentity(ctx, cashierAdminInput("root@pos.dev", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	adminToken, err := identities.IssueSession(admin.ID)
	if err != nil {
		t.Fatalf("seed admin session: %v", err)
	}

	clerk, err := identities.CreateIdentity(ctx, cashierAdminInput("clerk@pos.dev", domain.RoleCashier))
	if err != nil {
		t.Fatalf("seed cashier: %v", err)
	}
	clerkToken, err := identities.IssueSession(clerk.ID)
	if err != nil {
		t.Fatalf("seed cashier session: %v", err)
	}

	e := NewRouter(Dependencies{
		Identities: identities,
		Profiles:   profiles,
		Logger:     zerolog.Nop(),
	})

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("preflight needs no auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/cashiers", nil)
		req.Header.Set(echo.HeaderOrigin, "https://pos.example.com")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
			t.Fatalf("expected permissive allow-origin, got %q", got)
		}
	})

	t.Run("missing bearer is rejected before any mutation", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers", "", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if profiles.inserts != 0 {
			t.Fatalf("no profile insert expected")
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers", "garbage-token", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if msg := decodeMessage(t, rec); msg != "invalid token" {
			t.Fatalf("unexpected message: %q", msg)
		}
	})

	t.Run("non-admin caller is forbidden", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers", clerkToken, `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if profiles.inserts != 0 {
			t.Fatalf("no profile insert expected")
		}
	})

	var cashierID string

	t.Run("admin creates a cashier", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers", adminToken, `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Profile struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"profile"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Profile.Role != "cashier" || resp.Profile.Email != "ann@x.com" {
			t.Fatalf("unexpected profile: %+v", resp.Profile)
		}
		cashierID = resp.Profile.ID

		stored, ok := profiles.profiles[cashierID]
		if !ok {
			t.Fatalf("profile row not written")
		}
		if stored.ID != cashierID {
			t.Fatalf("profile id mismatch")
		}
		// Identity record exists and is keyed by the same id.
		token, err := identities.IssueSession(cashierID)
		if err != nil {
			t.Fatalf("identity record missing for new cashier: %v", err)
		}
		caller, err := identities.ValidateSession(ctx, token)
		if err != nil || caller.ID != cashierID {
			t.Fatalf("identity lookup failed: %v", err)
		}
	})

	t.Run("duplicate email surfaces the store message", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers", adminToken, `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeMessage(t, rec); !strings.Contains(msg, "already been registered") {
			t.Fatalf("store message not surfaced: %q", msg)
		}
	})

	t.Run("weak password is rejected before the stores", func(t *testing.T) {
		before := profiles.inserts
		rec := do(http.MethodPost, "/v1/cashiers", adminToken, `{"name":"Bob","email":"bob@x.com","password":"abc"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if profiles.inserts != before {
			t.Fatalf("no profile insert expected")
		}
	})

	t.Run("malformed body is a server error", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers", adminToken, "not-json")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("admin deletes the cashier", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers/delete", adminToken, `{"id":"`+cashierID+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
		if _, ok := profiles.profiles[cashierID]; ok {
			t.Fatalf("profile row should be cleaned up")
		}
	})

	t.Run("deleting a nonexistent id is a store rejection", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/cashiers/delete", adminToken, `{"id":"`+cashierID+`"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeMessage(t, rec); msg != "user not found" {
			t.Fatalf("unexpected message: %q", msg)
		}
	})

	t.Run("liveness probe", func(t *testing.T) {
		rec := do(http.MethodGet, "/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func cashierAdminInput(email string, role domain.Role) ports.CreateIdentityInput {
	return ports.CreateIdentityInput{
		Email:         email,
		Password:      "seed-password",
		Role:          role,
		EmailVerified: true,
	}
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v (%s)", err, rec.Body.String())
	}
	return resp.Message
}
