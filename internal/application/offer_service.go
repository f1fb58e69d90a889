package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
)

var (
	ErrOfferNotFound      = errors.New("offer not found")
	ErrDurationOutOfRange = errors.New("duration must be between 15 minutes and 4 hours")
)

type OfferService struct {
	Repo   repository.OfferRepository
	Logger *logrus.Logger
}

func NewOfferService(repo repository.OfferRepository, logger *logrus.Logger) *OfferService {
	return &OfferService{Repo: repo, Logger: logger}
}

type OfferInput struct {
	Title       string
	Description string
	Duration    time.Duration
	IsOnline    bool
	Location    string
}

// Create publishes a new offer owned by ownerID. The owner comes from the
// authenticated caller, never from the payload.
func (s *OfferService) Create(ctx context.Context, ownerID string, in OfferInput) (*entity.Offer, error) {
	if !entity.ValidServiceDuration(in.Duration) {
		return nil, ErrDurationOutOfRange
	}
	o := &entity.Offer{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		IsOnline:    in.IsOnline,
		IsActive:    true,
		Location:    in.Location,
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OfferService) List(ctx context.Context, f repository.OfferFilter) ([]*entity.Offer, error) {
	return s.Repo.List(ctx, f)
}

func (s *OfferService) Get(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrOfferNotFound
	}
	return o, nil
}

type OfferUpdateInput struct {
	Title       *string
	Description *string
	Duration    *time.Duration
	IsOnline    *bool
	IsActive    *bool
	Location    *string
}

// Update applies a partial update. Offers belong to exactly one user and
// only that user may change them; existence is confirmed before ownership
// so a stranger gets 403, not 404.
func (s *OfferService) Update(ctx context.Context, actorID, id string, in OfferUpdateInput) (*entity.Offer, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrOfferNotFound
	}
	if err := Authorize(Actor{ID: actorID}, o, OwnerOnly); err != nil {
		return nil, err
	}

	if in.Title != nil {
		o.Title = *in.Title
	}
	if in.Description != nil {
		o.Description = *in.Description
	}
	if in.Duration != nil {
		if !entity.ValidServiceDuration(*in.Duration) {
			return nil, ErrDurationOutOfRange
		}
		o.Duration = *in.Duration
	}
	if in.IsOnline != nil {
		o.IsOnline = *in.IsOnline
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if in.Location != nil {
		o.Location = *in.Location
	}
	if err := s.Repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OfferService) Delete(ctx context.Context, actorID, id string) error {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ErrOfferNotFound
	}
	if err := Authorize(Actor{ID: actorID}, o, OwnerOnly); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
