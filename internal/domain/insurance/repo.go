package insurance

import (
	"context"

	"github.com/google/uuid"
)

// PolicyRepository stores enrolled policies. Claims live on the policy row.
type PolicyRepository interface {
	Create(ctx context.Context, p *Policy) error
	GetByID(ctx context.Context, id uuid.UUID) (*Policy, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Policy, error)
	UpdateClaims(ctx context.Context, id uuid.UUID, claims []Claim) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
