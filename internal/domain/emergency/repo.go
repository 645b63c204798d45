package emergency

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AlertRepository interface {
	Create(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*Alert, int, error)
	// ListOpenByVillages returns active and responding alerts reported from
	// the given villages, newest first.
	ListOpenByVillages(ctx context.Context, villages []string, limit, offset int) ([]*Alert, int, error)

	// MarkResponding performs the active → responding transition as a single
	// compare-and-set. It returns false when the alert is missing or no
	// longer active.
	MarkResponding(ctx context.Context, id, responderID uuid.UUID, at time.Time) (bool, error)
	// MarkResolved closes an alert that is still active or responding.
	// Returns false when the precondition no longer holds.
	MarkResolved(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// ReporterDirectory resolves a citizen user to the reporter identity the
// workflow needs. A missing citizen profile is an error.
type ReporterDirectory interface {
	GetReporter(ctx context.Context, userID uuid.UUID) (*Reporter, error)
}

// ResponderDirectory looks up community health workers by service area.
type ResponderDirectory interface {
	// FindByVillage returns available workers serving the village, best
	// performance score first, capped at limit.
	FindByVillage(ctx context.Context, village string, limit int) ([]Candidate, error)
	GetResponder(ctx context.Context, userID uuid.UUID) (*Candidate, error)
}

// Notifier delivers alert notifications. Implementations must not block for
// long; failures are reported through the error and never panic.
type Notifier interface {
	NotifyResponder(ctx context.Context, candidate Candidate, a *Alert) error
	// NotifyEmergencyServices escalates a critical alert to the 108 dispatch
	// sink. Best-effort.
	NotifyEmergencyServices(ctx context.Context, a *Alert) error
}

// EventSink receives alert lifecycle events for live feeds.
type EventSink interface {
	AlertEvent(event string, a *Alert)
}

// Clock supplies timestamps so tests can control time.
type Clock func() time.Time
