//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"errors"
	"os"
)

func readSecretNoEcho(_ *os.File) (string, error) {
	return "", errors.New("no-echo input unsupported on this platform")
}
