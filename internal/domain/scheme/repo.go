package scheme

import (
	"context"

	"github.com/google/uuid"
)

// ApplicationRepository stores per-user scheme records.
type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
	Update(ctx context.Context, a *Application) error
	GetByUserAndScheme(ctx context.Context, userID uuid.UUID, schemeName string) (*Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Application, error)
}
