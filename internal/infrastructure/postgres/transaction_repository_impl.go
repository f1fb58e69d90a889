package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
)

const transactionColumns = `id, sender_id, receiver_id, offer_id, title, text,
		duration_minutes, created_at`

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Settle inserts the ledger row and applies its duration to both balances
// inside a single database transaction. Both user rows are locked first, in
// id order so concurrent settlements between the same pair cannot deadlock,
// and a crash between the insert and the updates rolls everything back.
func (r *TransactionRepository) Settle(ctx context.Context, t *entity.Transaction) error {
	minutes := int64(t.Duration / time.Minute)

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id FROM users WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE
		`, []string{t.SenderID, t.ReceiverID})
		if err != nil {
			return err
		}
		locked := 0
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			locked++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if locked != 2 {
			return repository.ErrNotFound
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO transactions (sender_id, receiver_id, offer_id, title, text, duration_minutes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, t.SenderID, t.ReceiverID, nullableID(t.OfferID), t.Title, t.Text, minutes)
		if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE users SET time_sent_minutes = time_sent_minutes + $1, updated_at = now() WHERE id = $2
		`, minutes, t.SenderID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE users SET time_received_minutes = time_received_minutes + $1, updated_at = now() WHERE id = $2
		`, minutes, t.ReceiverID)
		return err
	})
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

func (r *TransactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListByUser returns the rows the user sent or received, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// Update is the administrative override: only title and text are writable,
// the parties and duration of a settled transaction never change.
func (r *TransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE transactions SET title = $1, text = $2 WHERE id = $3
	`, t.Title, t.Text, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	txs := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	t := &entity.Transaction{}
	var offerID *string
	var durMin int64
	if err := row.Scan(&t.ID, &t.SenderID, &t.ReceiverID, &offerID, &t.Title,
		&t.Text, &durMin, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if offerID != nil {
		t.OfferID = *offerID
	}
	t.Duration = time.Duration(durMin) * time.Minute
	return t, nil
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
