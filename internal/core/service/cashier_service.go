package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/luxpos/cashier-admin/internal/api/metrics"
	"github.com/luxpos/cashier-admin/internal/core/domain"
	"github.com/luxpos/cashier-admin/internal/core/ports"
)

// CashierService coordinates the two-store account lifecycle: the identity
// service owns existence and credentials, the profile repository holds the
// denormalized projection. There is no cross-store transaction; each
// operation writes the identity store first and the partial-failure behavior
// is fixed by contract (see CreateCashier and DeleteCashier).
type CashierService struct {
	identities ports.IdentityStore
	profiles   ports.ProfileRepository
	log        zerolog.Logger
}

func NewCashierService(identities ports.IdentityStore, profiles ports.ProfileRepository, log zerolog.Logger) *CashierService {
	return &CashierService{identities: identities, profiles: profiles, log: log}
}

// CreateCashier provisions a new cashier account: identity record first, then
// the profile row keyed by the new identity's id.
//
// If the identity create is rejected nothing has been written and the failure
// is terminal. If the profile insert fails afterwards, the identity record is
// NOT rolled back; the orphan is logged and counted rather than repaired,
// and the caller sees the profile store's message.
func (s *CashierService) CreateCashier(ctx context.Context, in ports.CreateCashierInput) (*domain.Profile, error) {
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	identity, err := s.identities.CreateIdentity(ctx, ports.CreateIdentityInput{
		Email:         in.Email,
		Password:      in.Password,
		Name:          in.Name,
		Role:          domain.RoleCashier,
		EmailVerified: true,
	})
	if err != nil || identity == nil {
		metrics.ProvisioningFailuresTotal.WithLabelValues(string(domain.FailureAccountCreate)).Inc()
		s.log.Error().Err(err).Str("email", in.Email).Msg("identity creation rejected")
		return nil, lifecycleError(domain.FailureAccountCreate, "failed to create account", err)
	}

	profile, err := s.profiles.Insert(ctx, &domain.Profile{
		ID:    identity.ID,
		Name:  in.Name,
		Email: in.Email,
		Role:  domain.RoleCashier,
	})
	if err != nil {
		// The identity from the previous step stays behind without a profile.
		metrics.ProvisioningFailuresTotal.WithLabelValues(string(domain.FailureProfileWrite)).Inc()
		metrics.OrphanedIdentitiesTotal.Inc()
		s.log.Warn().Err(err).
			Str("identity_id", identity.ID).
			Str("email", in.Email).
			Msg("profile insert failed after identity creation, identity orphaned")
		return nil, lifecycleError(domain.FailureProfileWrite, "failed to write profile", err)
	}

	metrics.CashiersCreatedTotal.Inc()
	s.log.Info().Str("cashier_id", profile.ID).Str("email", profile.Email).Msg("cashier provisioned")

	return profile, nil
}

// DeleteCashier deprovisions the account with the given identity id. The
// identity record is deleted first; a rejection there is terminal and leaves
// the profile untouched. The subsequent profile delete is best-effort: its
// failure is logged and counted but never surfaced, so a stale profile row
// may outlive its identity.
func (s *CashierService) DeleteCashier(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidAccountID
	}

	if err := s.identities.DeleteIdentity(ctx, id); err != nil {
		metrics.ProvisioningFailuresTotal.WithLabelValues(string(domain.FailureAccountDelete)).Inc()
		s.log.Error().Err(err).Str("cashier_id", id).Msg("identity deletion rejected")
		return lifecycleError(domain.FailureAccountDelete, "failed to delete account", err)
	}

	if err := s.profiles.DeleteByID(ctx, id); err != nil {
		metrics.OrphanedProfilesTotal.Inc()
		s.log.Warn().Err(err).Str("cashier_id", id).Msg("profile cleanup failed after account deletion, profile orphaned")
	}

	metrics.CashiersDeletedTotal.Inc()
	s.log.Info().Str("cashier_id", id).Msg("cashier deprovisioned")

	return nil
}

// lifecycleError wraps a store failure, surfacing the store's own message
// when it reported one.
func lifecycleError(kind domain.FailureKind, fallback string, err error) error {
	msg := fallback
	var se *domain.StoreError
	if errors.As(err, &se) && se.Message != "" {
		msg = se.Message
	}
	return &domain.LifecycleError{Kind: kind, Message: msg, Err: err}
}
