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

const offerColumns = `id, user_id, title, description, duration_minutes,
		is_online, is_active, location, publish_date`

type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

func (r *OfferRepository) Create(ctx context.Context, o *entity.Offer) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO offers (user_id, title, description, duration_minutes, is_online, is_active, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, publish_date
	`, o.UserID, o.Title, o.Description, int64(o.Duration/time.Minute), o.IsOnline, o.IsActive, o.Location)

	return row.Scan(&o.ID, &o.PublishDate)
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	return scanOffer(row)
}

func (r *OfferRepository) List(ctx context.Context, f repository.OfferFilter) ([]*entity.Offer, error) {
	where, args := buildOfferWhere(f)
	sql := `SELECT ` + offerColumns + ` FROM offers` + where + ` ORDER BY publish_date DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]*entity.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// Update never touches user_id or publish_date; ownership and the publish
// timestamp are fixed at creation.
func (r *OfferRepository) Update(ctx context.Context, o *entity.Offer) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE offers
		SET title = $1, description = $2, duration_minutes = $3, is_online = $4,
		    is_active = $5, location = $6
		WHERE id = $7
	`, o.Title, o.Description, int64(o.Duration/time.Minute), o.IsOnline, o.IsActive, o.Location, o.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanOffer(row pgx.Row) (*entity.Offer, error) {
	o := &entity.Offer{}
	var durMin int64
	if err := row.Scan(&o.ID, &o.UserID, &o.Title, &o.Description, &durMin,
		&o.IsOnline, &o.IsActive, &o.Location, &o.PublishDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	o.Duration = time.Duration(durMin) * time.Minute
	return o, nil
}

var _ repository.OfferRepository = (*OfferRepository)(nil)
