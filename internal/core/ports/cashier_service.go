package ports

import (
	"context"

	"github.com/luxpos/cashier-admin/internal/core/domain"
)

// CreateCashierInput carries the validated payload for a create operation.
type CreateCashierInput struct {
	Name     string
	Email    string
	Password string
}

// CashierService defines the account-lifecycle operations. Both operations
// mutate two stores (identity service, profile repository) without an atomic
// cross-store transaction; partial-failure behavior is part of the contract
// and documented on the implementation.
type CashierService interface {
	CreateCashier(ctx context.Context, in CreateCashierInput) (*domain.Profile, error)
	DeleteCashier(ctx context.Context, id string) error
}
