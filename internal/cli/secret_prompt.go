package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptSecret prints prompt and reads one line from input. Terminals get the
// line without echo; pipes and files are read as-is.
func PromptSecret(out io.Writer, input *os.File, prompt string) (string, error) {
	if input == nil {
		return "", errors.New("stdin unavailable")
	}
	fmt.Fprint(out, prompt)

	secret, err := readSecretNoEcho(input)
	if err == nil {
		fmt.Fprintln(out)
		return secret, nil
	}
	return readLine(input)
}

// readLine reads up to and excluding the next newline one byte at a time so
// that nothing past the line is buffered away from later prompts.
func readLine(input io.Reader) (string, error) {
	var line strings.Builder
	buffer := make([]byte, 1)
	for {
		n, err := input.Read(buffer)
		if n > 0 {
			if buffer[0] == '\n' {
				break
			}
			line.WriteByte(buffer[0])
		}
		if errors.Is(err, io.EOF) {
			if line.Len() == 0 {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(line.String(), "\r"), nil
}
