// Package input gathers a new entry's fields from line-oriented text.
//
// It does not know where the text comes from; the CLI hands it the terminal,
// tests hand it strings.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Draft is an entry as typed by the user, before the store validates it.
type Draft struct {
	Title    string
	Content  string
	Keywords []string
}

// readLine returns the next line without its line ending. ok is false once
// the reader is exhausted and nothing was read.
func readLine(r *bufio.Reader) (line string, ok bool, err error) {
	line, err = r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// ReadContent reads a multi-line block terminated by two consecutive empty
// lines. Neither terminating line belongs to the content; a single empty
// line between text lines is kept. End of input also terminates the block.
func ReadContent(r *bufio.Reader) (string, error) {
	var lines []string
	blank := false
	for {
		line, ok, err := readLine(r)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if line == "" {
			if blank {
				break
			}
			blank = true
			lines = append(lines, line)
			continue
		}
		blank = false
		lines = append(lines, line)
	}

	if blank {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n"), nil
}

// ParseKeywords splits a line on whitespace into lowercase keywords,
// dropping duplicates and keeping first-seen order.
func ParseKeywords(line string) []string {
	seen := map[string]bool{}
	keywords := []string{}
	for _, f := range strings.Fields(line) {
		f = strings.ToLower(f)
		if seen[f] {
			continue
		}
		seen[f] = true
		keywords = append(keywords, f)
	}
	return keywords
}

// Collector prompts for an entry on Out and reads the answers from In.
type Collector struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewCollector wraps r and w.
func NewCollector(r io.Reader, w io.Writer) *Collector {
	return &Collector{In: bufio.NewReader(r), Out: w}
}

// Collect asks for the title, the content block and the keywords line.
func (c *Collector) Collect() (Draft, error) {
	var d Draft

	if _, err := fmt.Fprint(c.Out, "Title: "); err != nil {
		return d, err
	}
	title, _, err := readLine(c.In)
	if err != nil {
		return d, fmt.Errorf("read title: %w", err)
	}
	d.Title = strings.TrimSpace(title)

	if _, err := fmt.Fprint(c.Out, "Content (finish with two empty lines):\n"); err != nil {
		return d, err
	}
	if d.Content, err = ReadContent(c.In); err != nil {
		return d, fmt.Errorf("read content: %w", err)
	}

	if _, err := fmt.Fprint(c.Out, "Keywords: "); err != nil {
		return d, err
	}
	line, _, err := readLine(c.In)
	if err != nil {
		return d, fmt.Errorf("read keywords: %w", err)
	}
	d.Keywords = ParseKeywords(line)

	return d, nil
}
