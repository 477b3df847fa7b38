// Package metrics defines and registers all custom Prometheus metrics for the
// Pokédex API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry on package load through
// promauto; per-route HTTP metrics come from echoprometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

const namespace = "pokedex"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "exists", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Roster metrics ────────────────────────────────────────────────────────────

// TeamMutationsTotal counts team writes.
// Labels:
//   - op: "create", "update", "rename", "add_member", "remove_member", "delete"
//   - result: "ok" or the domain error kind (e.g. "capacity_exceeded", "conflict")
var TeamMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "team_mutations_total",
		Help:      "Total number of team mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// FavoriteMutationsTotal counts successful favorite changes.
// Label:
//   - op: "add" or "remove"
var FavoriteMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorite_mutations_total",
		Help:      "Total number of successful favorite additions and removals.",
	},
	[]string{"op"},
)

// ── Stats metrics ─────────────────────────────────────────────────────────────

// StatsComputeDuration measures how long one statistics overview takes,
// snapshot read included.
var StatsComputeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stats_compute_duration_seconds",
		Help:      "Duration of a statistics overview computation.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// Result turns an operation outcome into a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "exists"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
