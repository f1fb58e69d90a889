package entity

import "time"

// Duration bounds shared by offers and transactions. A service exchange is
// never shorter than a quarter hour nor longer than four hours.
const (
	MinServiceDuration = 15 * time.Minute
	MaxServiceDuration = 4 * time.Hour
)

// ValidServiceDuration reports whether d lies within the allowed bounds,
// both ends inclusive.
func ValidServiceDuration(d time.Duration) bool {
	return d >= MinServiceDuration && d <= MaxServiceDuration
}

// Offer is a published service listing. PublishDate is set at creation and
// never changes afterwards.
type Offer struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Duration    time.Duration
	IsOnline    bool
	IsActive    bool
	Location    string
	PublishDate time.Time
}

func (o *Offer) OwnerID() string { return o.UserID }
