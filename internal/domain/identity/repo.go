package identity

import (
	"context"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
}

type CitizenRepository interface {
	Create(ctx context.Context, p *CitizenProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*CitizenProfile, error)
	Update(ctx context.Context, p *CitizenProfile) error
}

type ASHARepository interface {
	Create(ctx context.Context, w *ASHAWorker) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*ASHAWorker, error)
	Update(ctx context.Context, w *ASHAWorker) error
	// ListByVillage returns available workers serving the given village,
	// highest performance score first.
	ListByVillage(ctx context.Context, village string, limit int) ([]*ASHAWorker, error)
}
