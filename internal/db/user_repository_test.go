package db

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestUserRepositoryLooksUpEmailCaseInsensitively(t *testing.T) {
	database := openTestDatabase(t)
	created := createTestUser(t, database, "Mixed.Case@Kira.Local")
	repo := NewUserRepository(database)

	found, err := repo.FindByNormalizedEmail("  mixed.case@kira.local ")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, found.ID)
	}

	exists, err := repo.ExistsByNormalizedEmail("MIXED.CASE@KIRA.LOCAL")
	if err != nil {
		t.Fatalf("exists by email: %v", err)
	}
	if !exists {
		t.Fatal("expected email to exist")
	}

	exists, err = repo.ExistsByNormalizedEmail("nobody@kira.local")
	if err != nil {
		t.Fatalf("exists by unknown email: %v", err)
	}
	if exists {
		t.Fatal("expected unknown email to be absent")
	}

	if _, err := repo.FindByNormalizedEmail("nobody@kira.local"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "reset@kira.local")
	repo := NewUserRepository(database)

	if err := repo.UpdatePassword(user.ID, "new-hash", true); err != nil {
		t.Fatalf("update password: %v", err)
	}
	stored, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if stored.PasswordHash != "new-hash" || !stored.MustChangePassword {
		t.Fatalf("unexpected stored user %+v", stored)
	}

	if err := repo.UpdatePassword(user.ID+100, "hash", false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for missing user, got %v", err)
	}
}
