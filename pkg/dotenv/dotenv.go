package dotenv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// CommentMarker starts a comment line
const CommentMarker = "#"

// Line is a single line of a dotenv file
type Line struct {
	Raw        string
	Key        string
	Value      string
	Assignment bool
}

// ParseLine classifies a raw line. Lines containing "=" that are not
// comments are split on the first "=" with both halves trimmed; anything
// else is kept as an opaque passthrough line.
func ParseLine(raw string) Line {
	line := Line{Raw: raw}
	if !strings.Contains(raw, "=") || strings.HasPrefix(strings.TrimSpace(raw), CommentMarker) {
		return line
	}

	key, value, _ := strings.Cut(raw, "=")
	line.Key = strings.TrimSpace(key)
	line.Value = strings.TrimSpace(value)
	line.Assignment = true
	return line
}

// Exists reports whether path exists. A missing file, or a path running
// through a regular file, is not an error.
func Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return true, nil
}

// Head reads path as UTF-8 text and returns at most its first n lines
func Head(path string, n int) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to decode %s: not valid UTF-8", path)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	scanner.Split(ScanLines)

	lines := make([]Line, 0, n)
	for len(lines) < n && scanner.Scan() {
		lines = append(lines, ParseLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	return lines, nil
}

// ScanLines is a bufio.SplitFunc breaking on every line boundary a text
// editor would: \n, \r, \r\n, \v, \f, \x1c-\x1e, U+0085, U+2028 and
// U+2029. A trailing line break does not produce an empty final line.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i := 0; i < len(data); {
		if !atEOF && !utf8.FullRune(data[i:]) {
			return 0, nil, nil
		}
		r, size := utf8.DecodeRune(data[i:])

		if r == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// need the next byte to tell \r from \r\n
				return 0, nil, nil
			}
			return i + 1, data[:i], nil
		}

		if isLineBreak(r) {
			return i + size, data[:i], nil
		}
		i += size
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Values parses the whole file the way an application loading it with
// godotenv would see it
func Values(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}
