//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// readSecretNoEcho fails when input is not a terminal, leaving input unread.
func readSecretNoEcho(input *os.File) (string, error) {
	fd := int(input.Fd())
	termios, err := unix.IoctlGetTermios(fd, getTermiosRequest)
	if err != nil {
		return "", err
	}
	restore := *termios
	silent := restore
	silent.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, setTermiosRequest, &silent); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, setTermiosRequest, &restore)
	}()

	return readLine(input)
}
