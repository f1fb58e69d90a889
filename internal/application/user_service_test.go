package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
)

func newUserFixture(users ...*entity.User) (*UserService, *stubUserRepo) {
	repo := newStubUserRepo(users...)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	svc := NewUserService(repo, jwt, nil, logrus.New(), nil, false)
	return svc, repo
}

func activeUser(id, email, password string) *entity.User {
	hash, _ := helpers.HashPassword(password)
	return &entity.User{ID: id, Email: email, Password: hash, FirstName: "Test", IsActive: true}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newUserFixture()
	u, err := svc.Register(context.Background(), RegisterInput{Email: "new@test.local", Password: "secret123", FirstName: "Nuevo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Error("expected id to be assigned")
	}
	if u.Password == "secret123" {
		t.Error("password stored in plain text")
	}
	if !helpers.CompareHashAndPassword(u.Password, "secret123") {
		t.Error("stored hash does not verify")
	}
	stored, _ := repo.GetByID(context.Background(), u.ID)
	if !stored.IsActive {
		t.Error("new accounts start active")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(activeUser("u1", "taken@test.local", "pw"))
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "taken@test.local", Password: "whatever1"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}
	// case-insensitive match
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "TAKEN@test.local", Password: "whatever1"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("uppercase: got %v, want ErrEmailTaken", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newUserFixture(activeUser("u1", "alice@test.local", "password1"))
	u, pair, err := svc.Login(context.Background(), "alice@test.local", "password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("user id = %q", u.ID)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("claims uid = %q, want u1", claims.UserID)
	}
	if claims.SessionID == "" {
		t.Error("expected a session id in claims")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserFixture(activeUser("u1", "alice@test.local", "password1"))
	if _, _, err := svc.Login(context.Background(), "alice@test.local", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@test.local", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDeactivatedAccountLooksLikeBadPassword(t *testing.T) {
	u := activeUser("u1", "gone@test.local", "password1")
	u.IsActive = false
	svc, _ := newUserFixture(u)
	if _, _, err := svc.Login(context.Background(), "gone@test.local", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	svc, _ := newUserFixture(activeUser("u1", "alice@test.local", "password1"))
	_, pair, err := svc.Login(context.Background(), "alice@test.local", "password1")
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fresh.AccessToken == "" || fresh.RefreshToken == "" {
		t.Fatal("expected rotated tokens")
	}
	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("access token as refresh: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, repo := newUserFixture(activeUser("u1", "alice@test.local", "pw"))
	name := "Alicia"
	loc := "Sevilla"
	u, err := svc.UpdateProfile(context.Background(), "u1", "u1", UpdateProfileInput{FirstName: &name, Location: &loc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.FirstName != "Alicia" || u.Location != "Sevilla" {
		t.Errorf("got %q/%q", u.FirstName, u.Location)
	}
	stored, _ := repo.GetByID(context.Background(), "u1")
	if stored.Email != "alice@test.local" {
		t.Error("untouched fields must survive")
	}
}

func TestUpdateProfileForbiddenForStranger(t *testing.T) {
	svc, _ := newUserFixture(
		activeUser("u1", "alice@test.local", "pw"),
		activeUser("u2", "bob@test.local", "pw"),
	)
	name := "Hacked"
	if _, err := svc.UpdateProfile(context.Background(), "u2", "u1", UpdateProfileInput{FirstName: &name}); !errors.Is(err, ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestUpdateProfileSuperuserAllowed(t *testing.T) {
	admin := activeUser("admin", "admin@test.local", "pw")
	admin.IsSuperuser = true
	svc, _ := newUserFixture(activeUser("u1", "alice@test.local", "pw"), admin)
	name := "Moderated"
	u, err := svc.UpdateProfile(context.Background(), "admin", "u1", UpdateProfileInput{FirstName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.FirstName != "Moderated" {
		t.Errorf("got %q", u.FirstName)
	}
}

func TestDeactivateSetsSentinelName(t *testing.T) {
	svc, repo := newUserFixture(activeUser("u1", "alice@test.local", "pw"))
	u, err := svc.Deactivate(context.Background(), "u1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.IsActive {
		t.Error("account still active")
	}
	if u.FirstName != entity.RemovedAccountName || u.LastName != "" {
		t.Errorf("name = %q %q, want sentinel", u.FirstName, u.LastName)
	}
	stored, _ := repo.GetByID(context.Background(), "u1")
	if stored.IsActive || stored.FirstName != entity.RemovedAccountName {
		t.Error("soft delete not persisted")
	}
}

func TestDeactivateIsIdempotent(t *testing.T) {
	svc, _ := newUserFixture(activeUser("u1", "alice@test.local", "pw"))
	ctx := context.Background()
	if _, err := svc.Deactivate(ctx, "u1", "u1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	// the owner repeats the delete after their account went inactive
	u, err := svc.Deactivate(ctx, "u1", "u1")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if u.IsActive {
		t.Error("account re-activated")
	}
}

func TestDeactivateForbiddenForStranger(t *testing.T) {
	svc, repo := newUserFixture(
		activeUser("u1", "alice@test.local", "pw"),
		activeUser("u2", "bob@test.local", "pw"),
	)
	if _, err := svc.Deactivate(context.Background(), "u2", "u1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
	stored, _ := repo.GetByID(context.Background(), "u1")
	if !stored.IsActive {
		t.Error("target must stay active")
	}
}

func TestGetUnknownUser(t *testing.T) {
	svc, _ := newUserFixture()
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
