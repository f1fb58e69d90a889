package repository

import (
	"context"
	"errors"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
)

// ErrNotFound is returned by any repository when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint.
var ErrConflict = errors.New("conflict")

// UserRepository defines the interface for user-related database operations.
// Balance fields are written only through TransactionRepository.Settle.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
