package chat

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores chat sessions.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, s *Session) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Session, error)
}
