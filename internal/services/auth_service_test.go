package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/kira/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authUserRepositoryStub struct {
	users map[string]models.User
}

func newAuthUserRepositoryStub() *authUserRepositoryStub {
	return &authUserRepositoryStub{users: make(map[string]models.User)}
}

func (stub *authUserRepositoryStub) ExistsByNormalizedEmail(email string) (bool, error) {
	_, ok := stub.users[email]
	return ok, nil
}

func (stub *authUserRepositoryStub) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := stub.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *authUserRepositoryStub) FindByID(userID uint) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *authUserRepositoryStub) Create(user *models.User) error {
	user.ID = uint(len(stub.users) + 1)
	stub.users[user.Email] = *user
	return nil
}

func (stub *authUserRepositoryStub) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	for email, user := range stub.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			user.MustChangePassword = mustChangePassword
			stub.users[email] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestAuthService(repo AuthUserRepository) *AuthService {
	service := NewAuthService(repo)
	service.cost = bcrypt.MinCost
	return service
}

func TestRegisterThenAuthenticate(t *testing.T) {
	repo := newAuthUserRepositoryStub()
	service := newTestAuthService(repo)

	user, err := service.Register(" Kira@Example.com ", "StrongPass1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "kira@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "StrongPass1" {
		t.Fatalf("expected hashed password")
	}

	if _, err := service.Register("kira@example.com", "StrongPass1"); !errors.Is(err, ErrAuthEmailExists) {
		t.Fatalf("expected ErrAuthEmailExists, got %v", err)
	}

	authenticated, err := service.Authenticate("KIRA@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authenticated.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, authenticated.ID)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	service := newTestAuthService(newAuthUserRepositoryStub())
	if _, err := service.Register("kira@example.com", "weakpass"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := service.Register("not-an-email", "StrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
}

func TestAuthenticateHidesUnknownEmail(t *testing.T) {
	service := newTestAuthService(newAuthUserRepositoryStub())
	if _, err := service.Register("kira@example.com", "StrongPass1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Authenticate("nobody@example.com", "StrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for unknown email, got %v", err)
	}
	if _, err := service.Authenticate("kira@example.com", "WrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for wrong password, got %v", err)
	}
}

func TestForcedPasswordChangeFlow(t *testing.T) {
	repo := newAuthUserRepositoryStub()
	service := newTestAuthService(repo)
	user, err := service.Register("kira@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := repo.UpdatePassword(user.ID, user.PasswordHash, true); err != nil {
		t.Fatalf("flag user: %v", err)
	}

	if _, err := service.Authenticate("kira@example.com", "StrongPass1"); !errors.Is(err, ErrAuthPasswordRequired) {
		t.Fatalf("expected ErrAuthPasswordRequired, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "EvenStronger2"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := service.Authenticate("kira@example.com", "EvenStronger2"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}
