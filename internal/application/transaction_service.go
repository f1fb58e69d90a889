package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
	"github.com/javnievic/comparte-tu-tiempo/pkg/mailer"
)

var (
	ErrReceiverNotFound    = errors.New("receiver does not exist")
	ErrSelfTransfer        = errors.New("cannot send time to yourself")
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionService struct {
	Repo        repository.TransactionRepository
	Users       repository.UserRepository
	Offers      repository.OfferRepository
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewTransactionService(repo repository.TransactionRepository, users repository.UserRepository, offers repository.OfferRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *TransactionService {
	return &TransactionService{Repo: repo, Users: users, Offers: offers, Logger: logger, Pub: pub, MailEnabled: mailEnabled}
}

type TransactionInput struct {
	ReceiverID string
	OfferID    string
	Title      string
	Text       string
	Duration   time.Duration
}

// Create validates a transfer and settles it. Validation order matters:
// duration bounds, receiver existence, self-transfer, offer reference.
// Settlement itself is delegated to the repository, which commits the
// ledger row and both balance increments as one atomic unit.
func (s *TransactionService) Create(ctx context.Context, senderID string, in TransactionInput) (*entity.Transaction, error) {
	if !entity.ValidServiceDuration(in.Duration) {
		return nil, ErrDurationOutOfRange
	}
	receiver, err := s.Users.GetByID(ctx, in.ReceiverID)
	if err != nil {
		return nil, ErrReceiverNotFound
	}
	if receiver.ID == senderID {
		return nil, ErrSelfTransfer
	}
	if in.OfferID != "" {
		if _, err := s.Offers.GetByID(ctx, in.OfferID); err != nil {
			return nil, ErrOfferNotFound
		}
	}

	t := &entity.Transaction{
		SenderID:   senderID,
		ReceiverID: in.ReceiverID,
		OfferID:    in.OfferID,
		Title:      in.Title,
		Text:       in.Text,
		Duration:   in.Duration,
	}
	if err := s.Repo.Settle(ctx, t); err != nil {
		return nil, err
	}

	s.notifyReceiver(ctx, t, receiver)
	return t, nil
}

// notifyReceiver queues a time-received email after the settle commits.
// Best effort only; a broker outage never fails the transfer.
func (s *TransactionService) notifyReceiver(ctx context.Context, t *entity.Transaction, receiver *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	sender, err := s.Users.GetByID(ctx, t.SenderID)
	if err != nil {
		return
	}
	job := mailer.EmailJob{
		To:       receiver.Email,
		Template: "time_received",
		Data: map[string]any{
			"Name":     receiver.FirstName,
			"Sender":   sender.FirstName,
			"Title":    t.Title,
			"Duration": entity.FormatBalance(t.Duration),
			"Balance":  entity.FormatBalance(receiver.Balance() + t.Duration),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("transaction_id", t.ID).Warn("notification enqueue failed")
	}
}

// List is the administrative view over the whole ledger.
func (s *TransactionService) List(ctx context.Context, actorID string) ([]*entity.Transaction, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Superuser {
		return nil, ErrForbidden
	}
	return s.Repo.List(ctx)
}

// ListMine returns the caller's sent and received rows, newest first.
func (s *TransactionService) ListMine(ctx context.Context, actorID string) ([]*entity.Transaction, error) {
	return s.Repo.ListByUser(ctx, actorID)
}

// Get allows the two parties and administrators to read a single row.
func (s *TransactionService) Get(ctx context.Context, actorID, id string) (*entity.Transaction, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.ID != t.SenderID && actor.ID != t.ReceiverID && !actor.Superuser {
		return nil, ErrForbidden
	}
	return t, nil
}

type TransactionUpdateInput struct {
	Title *string
	Text  *string
}

// AdminUpdate is the only mutation a settled transaction admits: a
// superuser may correct title and text. Duration and parties stay fixed
// because the balances they produced are already applied.
func (s *TransactionService) AdminUpdate(ctx context.Context, actorID, id string, in TransactionUpdateInput) (*entity.Transaction, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, t, SuperuserOnly); err != nil {
		return nil, err
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Text != nil {
		t.Text = *in.Text
	}
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) actor(ctx context.Context, actorID string) (Actor, error) {
	u, err := s.Users.GetByID(ctx, actorID)
	if err != nil || !u.IsActive {
		return Actor{}, ErrInvalidCredentials
	}
	return Actor{ID: u.ID, Superuser: u.IsSuperuser}, nil
}
