package ports

import (
	"context"

	"github.com/luxpos/cashier-admin/internal/core/domain"
)

// CreateIdentityInput carries all data needed to create an identity record.
type CreateIdentityInput struct {
	Email         string
	Password      string
	Name          string
	Role          domain.Role
	EmailVerified bool
}

// IdentityStore is the external service of record for credentials, session
// validation, and identity lifecycle.
type IdentityStore interface {
	// ValidateSession exchanges a bearer token for the identity it belongs to.
	// A rejected or unknown token yields domain.ErrInvalidToken.
	ValidateSession(ctx context.Context, token string) (*domain.Identity, error)
	// CreateIdentity registers a new identity. Store rejections (duplicate
	// email, policy) are reported as *domain.StoreError.
	CreateIdentity(ctx context.Context, in CreateIdentityInput) (*domain.Identity, error)
	// DeleteIdentity removes the identity with the given id.
	DeleteIdentity(ctx context.Context, id string) error
}
