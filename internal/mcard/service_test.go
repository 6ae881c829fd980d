package mcard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/finderid/internal/mcard"
	"github.com/google/go-cmp/cmp"
)

func TestService_CreateRetriesTakenSlug(t *testing.T) {
	t.Parallel()

	var tried []string
	repo := &mcard.StubRepo{
		CreateFunc: func(_ context.Context, userID, slug string, f mcard.Fields) (mcard.Card, error) {
			tried = append(tried, slug)
			if len(tried) == 1 {
				return mcard.Card{}, mcard.ErrDuplicate
			}
			return mcard.Card{UserID: userID, Slug: slug, FullName: f.FullName, Theme: f.Theme}, nil
		},
	}
	svc := mcard.NewService(repo)
	n := 0
	svc.SetSlugger(func(string) string {
		n++
		return []string{"ana-1", "ana-2", "ana-3"}[n-1]
	})

	c, err := svc.Create(context.Background(), "u1", mcard.Fields{FullName: "Ana"})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"ana-1", "ana-2"}, tried); diff != "" {
		t.Errorf("slugs tried mismatch (-want +got):\n%s", diff)
	}
	if c.Theme != "classic" {
		t.Errorf("Theme = %q, want: classic", c.Theme)
	}
}

func TestService_CreateGivesUp(t *testing.T) {
	t.Parallel()

	attempts := 0
	repo := &mcard.StubRepo{
		CreateFunc: func(context.Context, string, string, mcard.Fields) (mcard.Card, error) {
			attempts++
			return mcard.Card{}, mcard.ErrDuplicate
		},
	}
	svc := mcard.NewService(repo)

	if _, err := svc.Create(context.Background(), "u1", mcard.Fields{FullName: "Ana"}); !errors.Is(err, mcard.ErrDuplicate) {
		t.Errorf("Create() error = %v, want: %v", err, mcard.ErrDuplicate)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want: 3", attempts)
	}
}

func TestService_OwnerOnly(t *testing.T) {
	t.Parallel()

	updated, deleted := 0, 0
	repo := &mcard.StubRepo{
		FindFunc: func(_ context.Context, id string) (mcard.Card, error) {
			if id == "missing" {
				return mcard.Card{}, mcard.ErrNotFound
			}
			return mcard.Card{ID: id, UserID: "owner"}, nil
		},
		UpdateFunc: func(_ context.Context, id string, f mcard.Fields) (mcard.Card, error) {
			updated++
			return mcard.Card{ID: id, FullName: f.FullName}, nil
		},
		DeleteFunc: func(context.Context, string) error {
			deleted++
			return nil
		},
	}
	svc := mcard.NewService(repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		id     string
		want   error
	}{
		{"owner", "owner", "c1", nil},
		{"other user", "intruder", "c1", mcard.ErrForbidden},
		{"missing", "owner", "missing", mcard.ErrNotFound},
	}

	for _, tt := range tests {
		if _, err := svc.Update(ctx, tt.userID, tt.id, mcard.Fields{FullName: "New"}); !errors.Is(err, tt.want) {
			t.Errorf("%s: Update() error = %v, want: %v", tt.name, err, tt.want)
		}
		if err := svc.Delete(ctx, tt.userID, tt.id); !errors.Is(err, tt.want) {
			t.Errorf("%s: Delete() error = %v, want: %v", tt.name, err, tt.want)
		}
	}

	if updated != 1 || deleted != 1 {
		t.Errorf("updated = %d, deleted = %d, want: 1 and 1", updated, deleted)
	}
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	var gotTerm string
	repo := &mcard.StubRepo{
		SearchFunc: func(_ context.Context, term string, _ int) ([]mcard.Card, error) {
			gotTerm = term
			return []mcard.Card{{Slug: "acme"}}, nil
		},
	}
	svc := mcard.NewService(repo)

	cards, err := svc.Search(context.Background(), "  Acme ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if gotTerm != "Acme" || len(cards) != 1 {
		t.Errorf("Search() queried %q and got %d cards, want: Acme and 1", gotTerm, len(cards))
	}

	gotTerm = ""
	cards, err = svc.Search(context.Background(), "a", 10)
	if err != nil {
		t.Fatal(err)
	}
	if gotTerm != "" || len(cards) != 0 {
		t.Errorf("Search() of a one-letter term hit the repository")
	}
}
