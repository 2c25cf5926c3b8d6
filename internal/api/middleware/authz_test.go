package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/luxpos/cashier-admin/internal/core/domain"
)

func TestAuthorize_AdminAdmitted(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(identityKey, &domain.Identity{ID: "id-1", Role: domain.RoleAdmin})

	called := false
	mw := Authorize(domain.PermProvisionCashiers)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		identity *domain.Identity
	}{
		{"cashier role", &domain.Identity{ID: "id-2", Role: domain.RoleCashier}},
		{"case variant of admin", &domain.Identity{ID: "id-3", Role: domain.Role("Admin")}},
		{"unknown role", &domain.Identity{ID: "id-4", Role: domain.Role("manager")}},
		{"empty role", &domain.Identity{ID: "id-5"}},
		{"no identity in context", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.identity != nil {
				c.Set(identityKey, tc.identity)
			}

			mw := Authorize(domain.PermProvisionCashiers)
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			_ = handler(c)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}
