package application

import "errors"

// ErrForbidden means the acting principal exists and the resource exists,
// but the principal may not perform the mutation.
var ErrForbidden = errors.New("forbidden")

// Actor is the authenticated principal attempting an operation.
type Actor struct {
	ID        string
	Superuser bool
}

// Owned is any resource with a single owning user. User, Offer and
// Transaction all satisfy it, which lets one capability check cover the
// mutation rules of all three entities.
type Owned interface {
	OwnerID() string
}

// Policy selects who besides nobody may mutate a resource.
type Policy int

const (
	// OwnerOnly permits the owning user and no one else.
	OwnerOnly Policy = iota
	// OwnerOrSuperuser additionally permits administrators.
	OwnerOrSuperuser
	// SuperuserOnly permits administrators exclusively.
	SuperuserOnly
)

// Authorize applies the policy; reads are never routed through here, only
// update/delete paths.
func Authorize(actor Actor, res Owned, p Policy) error {
	switch p {
	case OwnerOnly:
		if actor.ID == res.OwnerID() {
			return nil
		}
	case OwnerOrSuperuser:
		if actor.ID == res.OwnerID() || actor.Superuser {
			return nil
		}
	case SuperuserOnly:
		if actor.Superuser {
			return nil
		}
	}
	return ErrForbidden
}
