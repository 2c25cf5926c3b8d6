// Package metrics defines and registers all custom Prometheus metrics for the
// cashier-admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors are registered with the default Prometheus registry at package
// load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cashieradmin"

// ── Provisioning metrics ──────────────────────────────────────────────────────

// CashiersCreatedTotal counts fully provisioned cashier accounts (identity
// record and profile row both written).
var CashiersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cashiers_created_total",
		Help:      "Total number of cashier accounts fully provisioned.",
	},
)

// CashiersDeletedTotal counts deprovisioned cashier accounts. The counter is
// incremented once the identity record is gone, regardless of the best-effort
// profile cleanup outcome.
var CashiersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cashiers_deleted_total",
		Help:      "Total number of cashier accounts deprovisioned.",
	},
)

// ProvisioningFailuresTotal counts terminal lifecycle failures.
// Label:
//   - reason: "account_create", "profile_write", or "account_delete"
var ProvisioningFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provisioning_failures_total",
		Help:      "Total number of terminal account-lifecycle failures, by reason.",
	},
	[]string{"reason"},
)

// ── Consistency metrics ───────────────────────────────────────────────────────

// OrphanedIdentitiesTotal counts create operations that left an identity
// record behind after the profile insert failed. There is no compensating
// delete; this counter is how the gap stays visible.
var OrphanedIdentitiesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphaned_identities_total",
		Help:      "Total number of identity records left without a profile after a failed profile insert.",
	},
)

// OrphanedProfilesTotal counts delete operations whose best-effort profile
// cleanup failed, leaving a profile row pointing at a deleted identity.
var OrphanedProfilesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphaned_profiles_total",
		Help:      "Total number of profile rows left behind after a failed best-effort cleanup.",
	},
)

// ── Identity service metrics ──────────────────────────────────────────────────

// IdentityRequestDuration measures round-trip latency of identity service calls.
// Label:
//   - op: "validate_session", "create_identity", or "delete_identity"
var IdentityRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "identity_request_duration_seconds",
		Help:      "Duration of HTTP calls to the identity service.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)

// SessionCacheTotal counts session cache lookups in the auth middleware.
// Label:
//   - result: "hit" (identity served from cache) or "miss" (store lookup performed)
var SessionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_cache_total",
		Help:      "Total number of session cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
