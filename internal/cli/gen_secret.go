package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/slotpicker/internal/security"
)

func RunGenerateSecretCommand(out io.Writer, length int) error {
	secret, err := security.GenerateSecretKey(length)
	if err != nil {
		return fmt.Errorf("generate secret key: %w", err)
	}
	fmt.Fprintln(out, secret)
	return nil
}
