package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errInvalidID = errors.New("id must be a positive integer")

// GetSimpleText prints prompt to w and reads one line from sc. Blank lines
// are skipped and the prompt repeated. io.EOF is returned when input ends
// before a non-blank line arrives.
func GetSimpleText(sc *bufio.Scanner, prompt string, w io.Writer) (string, error) {
	for {
		if _, err := fmt.Fprint(w, prompt); err != nil {
			return "", err
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
}

// GetID reads a line with GetSimpleText and parses it as a positive id.
func GetID(sc *bufio.Scanner, prompt string, w io.Writer) (int64, error) {
	text, err := GetSimpleText(sc, prompt, w)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w, got %q", errInvalidID, text)
	}
	return id, nil
}
