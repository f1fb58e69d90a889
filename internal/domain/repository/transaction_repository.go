package repository

import (
	"context"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
)

// TransactionRepository defines the interface for the time ledger.
//
// Settle is the only write path for user balances: it must persist the
// transaction row and apply its duration to sender.time_sent and
// receiver.time_received as one atomic unit, exactly once.
type TransactionRepository interface {
	Settle(ctx context.Context, t *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context) ([]*entity.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)
	Update(ctx context.Context, t *entity.Transaction) error
}
