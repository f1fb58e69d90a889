package application

import (
	"errors"
	"testing"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
)

func TestAuthorize(t *testing.T) {
	offer := &entity.Offer{ID: "o1", UserID: "owner"}

	cases := []struct {
		name    string
		actor   Actor
		policy  Policy
		wantErr bool
	}{
		{"owner only, owner", Actor{ID: "owner"}, OwnerOnly, false},
		{"owner only, stranger", Actor{ID: "other"}, OwnerOnly, true},
		{"owner only, superuser is not exempt", Actor{ID: "admin", Superuser: true}, OwnerOnly, true},
		{"owner or superuser, owner", Actor{ID: "owner"}, OwnerOrSuperuser, false},
		{"owner or superuser, superuser", Actor{ID: "admin", Superuser: true}, OwnerOrSuperuser, false},
		{"owner or superuser, stranger", Actor{ID: "other"}, OwnerOrSuperuser, true},
		{"superuser only, superuser", Actor{ID: "admin", Superuser: true}, SuperuserOnly, false},
		{"superuser only, owner", Actor{ID: "owner"}, SuperuserOnly, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, offer, tc.policy)
			if tc.wantErr && !errors.Is(err, ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestOwnedImplementations(t *testing.T) {
	u := &entity.User{ID: "u1"}
	o := &entity.Offer{ID: "o1", UserID: "u1"}
	tx := &entity.Transaction{ID: "t1", SenderID: "u1", ReceiverID: "u2"}
	for _, res := range []Owned{u, o, tx} {
		if res.OwnerID() != "u1" {
			t.Errorf("%T OwnerID() = %q, want u1", res, res.OwnerID())
		}
	}
}
