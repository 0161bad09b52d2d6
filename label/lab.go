package label

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrParse matches any *ParseError via errors.Is.
var ErrParse = errors.New("lab parse")

type ParseError struct {
	Line  int
	Field string // "start" | "end"
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Parse reads `<start> <end> <phoneme>` records. Blank lines and lines with
// fewer than three fields are skipped; trailing fields are ignored. A bad
// start or end fails the whole source.
func Parse(r io.Reader) ([]Segment, error) {
	var out []Segment
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		parts := strings.Fields(sc.Text())
		if len(parts) < 3 {
			continue
		}
		start, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: n, Field: "start", Value: parts[0], Err: err}
		}
		end, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: n, Field: "end", Value: parts[1], Err: err}
		}
		out = append(out, Segment{Start: start, End: end, Phoneme: parts[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func ParseFile(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	segs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segs, nil
}

func Write(w io.Writer, segs []Segment) error {
	bw := bufio.NewWriter(w)
	for _, s := range segs {
		if _, err := fmt.Fprintf(bw, "%d %d %s\n", s.Start, s.End, s.Phoneme); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteFile(path string, segs []Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, segs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
