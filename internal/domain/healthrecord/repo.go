package healthrecord

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository stores health records and share grants.
type Repository interface {
	Create(ctx context.Context, rec *HealthRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*HealthRecord, error)
	Update(ctx context.Context, rec *HealthRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID uuid.UUID, filter ListFilter, limit, offset int) ([]*HealthRecord, int, error)

	LatestWithVitals(ctx context.Context, patientID uuid.UUID) (*HealthRecord, error)
	RiskDistribution(ctx context.Context, patientID uuid.UUID) ([]RiskCount, error)
	ActivitySince(ctx context.Context, patientID uuid.UUID, since time.Time) ([]TypeCount, error)

	CreateShare(ctx context.Context, grant *ShareGrant) error
	GetShare(ctx context.Context, token string) (*ShareGrant, error)
}
