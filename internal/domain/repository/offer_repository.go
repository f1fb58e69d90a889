package repository

import (
	"context"
	"time"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
)

// OfferFilter carries the optional listing constraints parsed from query
// parameters. The zero value of each field means "no constraint"; filters
// compose conjunctively and results are ordered by publish date descending.
type OfferFilter struct {
	UserID      string
	IsOnline    *bool
	IsActive    *bool
	Location    string        // case-insensitive substring
	MinDuration time.Duration // inclusive lower bound, zero = unset
	MaxDuration time.Duration // inclusive upper bound, zero = unset
	FromDate    time.Time     // inclusive
	ToDate      time.Time     // inclusive
	Query       string        // substring over title OR description
}

// OfferRepository defines the interface for offer-related database operations.
type OfferRepository interface {
	Create(ctx context.Context, o *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	List(ctx context.Context, f OfferFilter) ([]*entity.Offer, error)
	Update(ctx context.Context, o *entity.Offer) error
	Delete(ctx context.Context, id string) error
}
