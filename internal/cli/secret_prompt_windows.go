//go:build windows

package cli

import (
	"os"

	"golang.org/x/sys/windows"
)

// readSecretNoEcho fails when input is not a console, leaving input unread.
func readSecretNoEcho(input *os.File) (string, error) {
	handle := windows.Handle(input.Fd())
	var restore uint32
	if err := windows.GetConsoleMode(handle, &restore); err != nil {
		return "", err
	}

	if err := windows.SetConsoleMode(handle, restore&^windows.ENABLE_ECHO_INPUT); err != nil {
		return "", err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, restore)
	}()

	return readLine(input)
}
