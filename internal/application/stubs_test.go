package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
)

// In-memory repositories for service tests. They implement the repository
// interfaces over plain maps with no locking; tests are single-goroutine.

type stubUserRepo struct {
	users map[string]*entity.User
	seq   int
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	r := &stubUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *entity.User) error {
	stored, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// balance fields are owned by the settle path
	cp := *u
	cp.TimeSent = stored.TimeSent
	cp.TimeReceived = stored.TimeReceived
	r.users[u.ID] = &cp
	return nil
}

type stubOfferRepo struct {
	offers map[string]*entity.Offer
	seq    int
}

func newStubOfferRepo(offers ...*entity.Offer) *stubOfferRepo {
	r := &stubOfferRepo{offers: map[string]*entity.Offer{}}
	for _, o := range offers {
		r.offers[o.ID] = o
	}
	return r
}

func (r *stubOfferRepo) Create(_ context.Context, o *entity.Offer) error {
	r.seq++
	o.ID = fmt.Sprintf("offer-%d", r.seq)
	cp := *o
	r.offers[o.ID] = &cp
	return nil
}

func (r *stubOfferRepo) GetByID(_ context.Context, id string) (*entity.Offer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOfferRepo) List(_ context.Context, _ repository.OfferFilter) ([]*entity.Offer, error) {
	out := make([]*entity.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubOfferRepo) Update(_ context.Context, o *entity.Offer) error {
	if _, ok := r.offers[o.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *o
	r.offers[o.ID] = &cp
	return nil
}

func (r *stubOfferRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.offers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.offers, id)
	return nil
}

// stubTxRepo settles against the user repo the way the SQL implementation
// does: ledger row plus both balance increments, all or nothing.
type stubTxRepo struct {
	users *stubUserRepo
	txs   map[string]*entity.Transaction
	seq   int
}

func newStubTxRepo(users *stubUserRepo) *stubTxRepo {
	return &stubTxRepo{users: users, txs: map[string]*entity.Transaction{}}
}

func (r *stubTxRepo) Settle(_ context.Context, t *entity.Transaction) error {
	sender, ok := r.users.users[t.SenderID]
	if !ok {
		return repository.ErrNotFound
	}
	receiver, ok := r.users.users[t.ReceiverID]
	if !ok {
		return repository.ErrNotFound
	}
	r.seq++
	t.ID = fmt.Sprintf("tx-%d", r.seq)
	cp := *t
	r.txs[t.ID] = &cp
	sender.TimeSent += t.Duration
	receiver.TimeReceived += t.Duration
	return nil
}

func (r *stubTxRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	t, ok := r.txs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTxRepo) List(_ context.Context) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(r.txs))
	for _, t := range r.txs {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubTxRepo) ListByUser(_ context.Context, userID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.txs {
		if t.SenderID == userID || t.ReceiverID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubTxRepo) Update(_ context.Context, t *entity.Transaction) error {
	stored, ok := r.txs[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = t.Title
	stored.Text = t.Text
	return nil
}
