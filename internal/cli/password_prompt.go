package cli

import (
	"errors"
	"io"
	"os"
)

var errNoTerminal = errors.New("stdin is not an interactive terminal")

// readPasswordNoEcho reads one line from stdin with terminal echo switched off.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errNoTerminal
	}

	restore, err := suppressEcho(stdin)
	if err != nil {
		return nil, errors.Join(errNoTerminal, err)
	}
	defer restore()

	return readSecretLine(stdin)
}

// readSecretLine consumes bytes up to and including the next newline so a
// second prompt on the same stream still sees its own line.
func readSecretLine(r io.Reader) ([]byte, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			line = append(line, buf[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, nil
}
