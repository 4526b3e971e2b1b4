package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/kira/internal/db"
	"github.com/terraincognita07/kira/internal/security"
	"github.com/terraincognita07/kira/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

type ResetPasswordOptions struct {
	DBPath string
	Email  string
	// Prompt asks for the new password on the terminal instead of issuing a
	// temporary one.
	Prompt bool
	Stdin  *os.File
	Out    io.Writer
}

// RunResetPasswordCommand replaces an account password. A generated password
// must be changed at the next login; a prompted one is final.
func RunResetPasswordCommand(options ResetPasswordOptions) error {
	email := services.NormalizeAuthEmail(options.Email)
	if email == "" {
		return errors.New("a valid email is required")
	}
	out := options.Out
	if out == nil {
		out = os.Stdout
	}

	chosen := ""
	if options.Prompt {
		password, err := promptNewPassword(options.Stdin, out)
		if err != nil {
			return err
		}
		chosen = password
	}

	database, err := db.OpenSQLite(options.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	return resetPassword(db.NewUserRepository(database), email, chosen, out)
}

func resetPassword(users *db.UserRepository, email string, chosen string, out io.Writer) error {
	user, err := users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password := chosen
	mustChange := chosen == ""
	if mustChange {
		if password, err = security.TemporaryPassword(temporaryPasswordLength); err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
	} else if err := services.ValidatePasswordStrength(password); err != nil {
		return errors.New("password needs 8+ characters with upper, lower and a digit")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(hash), mustChange); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	if mustChange {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "User must change password on next login.")
	}
	return nil
}

func promptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	if stdin == nil {
		stdin = os.Stdin
	}

	fmt.Fprint(out, "New password: ")
	first, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
