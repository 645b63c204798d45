package facility

import (
	"context"

	"github.com/google/uuid"
)

// SearchFilter narrows a facility search. Zero values mean "any".
type SearchFilter struct {
	Type     string
	District string
	BSKYOnly bool
	Limit    int
}

// Repository stores healthcare facility listings.
type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Facility, error)
	// ListByDistrict returns facilities in the district, BSKY-empanelled
	// first, then by rating.
	ListByDistrict(ctx context.Context, district string, limit int) ([]*Facility, error)
	// ListEmergencyCapable returns facilities offering emergency services or
	// running as hospitals, with known coordinates.
	ListEmergencyCapable(ctx context.Context, limit int) ([]*Facility, error)
}
