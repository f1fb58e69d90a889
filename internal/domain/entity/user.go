package entity

import (
	"fmt"
	"time"
)

// RemovedAccountName replaces the first name of a soft-deleted account so
// historical offers and transactions keep a displayable owner.
const RemovedAccountName = "Usuario eliminado"

// User is the aggregate root for the users domain.
// Passwords are stored as bcrypt hashes in Password field.
// TimeSent and TimeReceived are cumulative totals maintained exclusively by
// the transaction settle flow; nothing else writes them.
type User struct {
	ID           string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Location     string
	Description  string
	TimeSent     time.Duration
	TimeReceived time.Duration
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Balance is the net time the user holds: received minus sent. It can go
// negative; the bank does not require cover before sending time.
func (u *User) Balance() time.Duration {
	return u.TimeReceived - u.TimeSent
}

// OwnerID lets a User act as an owned resource: a user owns itself.
func (u *User) OwnerID() string { return u.ID }

// FormatBalance renders a net balance as "<sign><hours>h <minutes>min".
// The sign appears only for negative balances, e.g. "-3h 15min", "0h 0min".
func FormatBalance(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%s%dh %dmin", sign, h, m)
}
