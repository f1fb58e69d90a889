package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
)

func newOfferFixture(offers ...*entity.Offer) (*OfferService, *stubOfferRepo) {
	repo := newStubOfferRepo(offers...)
	return NewOfferService(repo, logrus.New()), repo
}

func TestCreateOffer(t *testing.T) {
	svc, _ := newOfferFixture()
	o, err := svc.Create(context.Background(), "u1", OfferInput{
		Title:       "Clases de guitarra",
		Description: "Para principiantes",
		Duration:    time.Hour,
		Location:    "Sevilla",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.UserID != "u1" {
		t.Errorf("owner = %q, want u1", o.UserID)
	}
	if !o.IsActive {
		t.Error("new offers start active")
	}
}

func TestCreateOfferDurationBounds(t *testing.T) {
	svc, _ := newOfferFixture()
	ctx := context.Background()
	for _, d := range []time.Duration{0, 14 * time.Minute, 5 * time.Hour} {
		if _, err := svc.Create(ctx, "u1", OfferInput{Title: "x", Description: "y", Duration: d}); !errors.Is(err, ErrDurationOutOfRange) {
			t.Errorf("duration %v: got %v, want ErrDurationOutOfRange", d, err)
		}
	}
	for _, d := range []time.Duration{15 * time.Minute, 4 * time.Hour} {
		if _, err := svc.Create(ctx, "u1", OfferInput{Title: "x", Description: "y", Duration: d}); err != nil {
			t.Errorf("duration %v: unexpected error %v", d, err)
		}
	}
}

func TestUpdateOfferOwnerOnly(t *testing.T) {
	svc, repo := newOfferFixture(&entity.Offer{ID: "o1", UserID: "owner", Title: "old", Duration: time.Hour, IsActive: true})
	ctx := context.Background()

	title := "new"
	if _, err := svc.Update(ctx, "stranger", "o1", OfferUpdateInput{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger: got %v, want ErrForbidden", err)
	}

	o, err := svc.Update(ctx, "owner", "o1", OfferUpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if o.Title != "new" {
		t.Errorf("title = %q", o.Title)
	}
	if o.Duration != time.Hour {
		t.Errorf("untouched duration changed: %v", o.Duration)
	}
	if stored := repo.offers["o1"]; stored.Title != "new" {
		t.Errorf("stored title = %q", stored.Title)
	}
}

func TestUpdateOfferRevalidatesDuration(t *testing.T) {
	svc, _ := newOfferFixture(&entity.Offer{ID: "o1", UserID: "owner", Duration: time.Hour, IsActive: true})
	bad := 10 * time.Minute
	if _, err := svc.Update(context.Background(), "owner", "o1", OfferUpdateInput{Duration: &bad}); !errors.Is(err, ErrDurationOutOfRange) {
		t.Errorf("got %v, want ErrDurationOutOfRange", err)
	}
}

func TestUpdateOfferMissing(t *testing.T) {
	svc, _ := newOfferFixture()
	title := "x"
	if _, err := svc.Update(context.Background(), "anyone", "nope", OfferUpdateInput{Title: &title}); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("got %v, want ErrOfferNotFound", err)
	}
}

func TestDeleteOfferOwnerOnly(t *testing.T) {
	svc, repo := newOfferFixture(&entity.Offer{ID: "o1", UserID: "owner", IsActive: true})
	ctx := context.Background()

	if err := svc.Delete(ctx, "stranger", "o1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, "owner", "o1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := repo.offers["o1"]; ok {
		t.Error("offer still present after delete")
	}
	if err := svc.Delete(ctx, "owner", "o1"); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("second delete: got %v, want ErrOfferNotFound", err)
	}
}

func TestListPassesFilterThrough(t *testing.T) {
	svc, _ := newOfferFixture(
		&entity.Offer{ID: "o1", UserID: "u1", Title: "a", IsActive: true},
		&entity.Offer{ID: "o2", UserID: "u2", Title: "b", IsActive: true},
	)
	out, err := svc.List(context.Background(), repository.OfferFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
}
