package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetByLogin matches the login case-insensitively
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
}
