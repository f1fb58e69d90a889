package entity

import "time"

// Transaction is an immutable ledger entry transferring time from sender to
// receiver. OfferID is denormalized context only; it never affects balances
// and is cleared if the offer is later deleted.
type Transaction struct {
	ID         string
	SenderID   string
	ReceiverID string
	OfferID    string // empty when not linked to an offer
	Title      string
	Text       string
	Duration   time.Duration
	CreatedAt  time.Time
}

func (t *Transaction) OwnerID() string { return t.SenderID }
