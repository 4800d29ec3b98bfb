package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	errSecretEmpty    = errors.New("secret must not be empty")
	errSecretMismatch = errors.New("secrets do not match")
)

// RunHashSecretCommand asks for the admin secret twice and prints the bcrypt
// hash to put under admin.secret_hash.
func RunHashSecretCommand(out io.Writer, input *os.File) error {
	secret, err := PromptSecret(out, input, "Admin secret: ")
	if err != nil {
		return fmt.Errorf("read secret: %w", err)
	}
	if strings.TrimSpace(secret) == "" {
		return errSecretEmpty
	}

	confirmation, err := PromptSecret(out, input, "Repeat admin secret: ")
	if err != nil {
		return fmt.Errorf("read secret confirmation: %w", err)
	}
	if confirmation != secret {
		return errSecretMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}

	fmt.Fprintln(out, "Add this to slotpicker.yaml (or SLOTPICKER_ADMIN_SECRET_HASH):")
	fmt.Fprintf(out, "admin:\n  secret_hash: %q\n", string(hash))
	return nil
}
