package postgres

import (
	"reflect"
	"testing"
	"time"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildOfferWhereEmpty(t *testing.T) {
	where, args := buildOfferWhere(repository.OfferFilter{})
	if where != "" {
		t.Errorf("expected empty clause, got %q", where)
	}
	if args != nil {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildOfferWhereSingle(t *testing.T) {
	where, args := buildOfferWhere(repository.OfferFilter{UserID: "u1"})
	if want := " WHERE user_id = $1"; where != want {
		t.Errorf("clause = %q, want %q", where, want)
	}
	if !reflect.DeepEqual(args, []any{"u1"}) {
		t.Errorf("args = %v, want [u1]", args)
	}
}

func TestBuildOfferWhereComposesAndNumbersArgs(t *testing.T) {
	f := repository.OfferFilter{
		UserID:      "u1",
		IsOnline:    boolPtr(true),
		MinDuration: 30 * time.Minute,
		MaxDuration: 2 * time.Hour,
		Query:       "guitarra",
	}
	where, args := buildOfferWhere(f)
	want := " WHERE user_id = $1 AND is_online = $2 AND duration_minutes >= $3 AND duration_minutes <= $4 AND (title ILIKE $5 OR description ILIKE $6)"
	if where != want {
		t.Errorf("clause = %q, want %q", where, want)
	}
	wantArgs := []any{"u1", true, int64(30), int64(120), "%guitarra%", "%guitarra%"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestBuildOfferWhereDateBounds(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	where, args := buildOfferWhere(repository.OfferFilter{FromDate: from, ToDate: to})
	want := " WHERE publish_date >= $1 AND publish_date < $2"
	if where != want {
		t.Errorf("clause = %q, want %q", where, want)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	// to_date is inclusive: the bound moves to the start of the next day
	if got := args[1].(time.Time); !got.Equal(to.AddDate(0, 0, 1)) {
		t.Errorf("upper bound = %v, want %v", got, to.AddDate(0, 0, 1))
	}
}

func TestBuildOfferWhereEscapesLikeInput(t *testing.T) {
	_, args := buildOfferWhere(repository.OfferFilter{Query: "100%_a\\b"})
	want := `%100\%\_a\\b%`
	if args[0] != want {
		t.Errorf("pattern = %q, want %q", args[0], want)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":  "plain",
		"50%":    `50\%`,
		"a_b":    `a\_b`,
		`back\s`: `back\\s`,
		"":       "",
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
