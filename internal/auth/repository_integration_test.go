//go:build integration

package auth_test

import (
	"errors"
	"testing"

	"github.com/ferdiebergado/finderid/internal/auth"
	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/user"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestRepository_Verify(t *testing.T) {
	ctx, conn := db.Setup(t)

	u, err := user.NewRepository(conn).Create(ctx, user.CreateParams{Email: "verify@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatal(err)
	}

	repo := auth.NewRepository(conn)
	if err := repo.Verify(ctx, u.ID); err != nil {
		t.Fatalf("repo.Verify() = %v", err)
	}

	if err := repo.Verify(ctx, u.ID); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("repo.Verify(again) = %v, want: %v", err, auth.ErrUserNotFound)
	}

	if err := repo.ChangePassword(ctx, u.ID, "new-hash"); err != nil {
		t.Errorf("repo.ChangePassword() = %v", err)
	}
}
