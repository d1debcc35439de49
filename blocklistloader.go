package adrules

import (
	"bufio"
	"fmt"
	"io"
)

// BlocklistLoader reads the raw lines of one source list.
type BlocklistLoader interface {
	// Returns the lines of the list, unprocessed.
	Load() ([]string, error)

	fmt.Stringer
}

// Lists can contain very long lines, particularly element hiding rules with
// many domains.
const maxLineLength = 4 * 1024 * 1024

// readLines returns all lines from r. Lines longer than maxLineLength are
// skipped. If reading fails part way through, the lines read until then are
// returned together with the error.
func readLines(r io.Reader) ([]string, error) {
	var (
		lines   []string
		line    []byte
		tooLong bool
		n       int
	)
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		if !tooLong && len(line)+len(chunk) > maxLineLength {
			tooLong = true
		}
		if !tooLong {
			line = append(line, chunk...)
		}
		if isPrefix {
			continue
		}
		n++
		if tooLong {
			Log.WithField("line", n).Warn("skipping line longer than 4MiB")
		} else {
			lines = append(lines, string(line))
		}
		line = line[:0]
		tooLong = false
	}
}
