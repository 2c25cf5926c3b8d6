package ports

import (
	"context"

	"github.com/luxpos/cashier-admin/internal/core/domain"
)

// ProfileRepository defines persistence operations for cashier profiles.
type ProfileRepository interface {
	// Insert stores a new profile and returns the stored row, including the
	// creation timestamp assigned by the repository.
	Insert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	// DeleteByID removes the profile keyed by the given identity id.
	DeleteByID(ctx context.Context, id string) error
}
