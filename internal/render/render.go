// Package render prints entries and reports for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/rcliao/didi/internal/model"
)

const (
	defaultWidth = 80
	titleWidth   = 40
)

// Options selects which parts of an entry are printed.
type Options struct {
	Date     bool
	ID       bool
	Hash     bool
	Keywords bool
	Content  bool

	Color    bool
	Width    int
	Location *time.Location
}

// DefaultOptions prints title, date and content.
func DefaultOptions() Options {
	return Options{Date: true, Content: true, Width: defaultWidth, Location: time.Local}
}

// TerminalWidth returns the width of f when it is a terminal, else 80.
func TerminalWidth(f *os.File) int {
	if !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Painter colors text when enabled.
type Painter struct {
	enabled bool
}

// NewPainter returns a Painter; with enabled false it returns text unchanged.
func NewPainter(enabled bool) Painter {
	return Painter{enabled: enabled}
}

// Accent colors s cyan.
func (p Painter) Accent(s string) string {
	if !p.enabled {
		return s
	}
	return text.Colors{text.FgCyan}.Sprint(s)
}

// Title colors s cyan and underlines it.
func (p Painter) Title(s string) string {
	if !p.enabled {
		return s
	}
	return text.Colors{text.FgCyan, text.Underline}.Sprint(s)
}

// Warn colors s red.
func (p Painter) Warn(s string) string {
	if !p.enabled {
		return s
	}
	return text.Colors{text.FgRed}.Sprint(s)
}

// Entries prints entries separated by rules, followed by a count line.
func Entries(w io.Writer, entries []model.Entry, o Options) error {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	p := NewPainter(o.Color)
	rule := strings.Repeat("-", o.Width)

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\n\n", rule)

		b.WriteString(p.Title(e.Title))
		if pad := titleWidth - utf8.RuneCountInString(e.Title); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		if o.Date {
			fmt.Fprintf(&b, "%s ", p.Accent(e.CreatedAt.In(o.Location).Format(time.RFC1123Z)))
		}
		if o.ID {
			fmt.Fprintf(&b, "%s ", p.Accent(fmt.Sprintf("[%d]", e.ID)))
		}
		if o.Hash {
			fmt.Fprintf(&b, "%s ", p.Accent("["+e.Hash+"]"))
		}
		if e.Hidden {
			b.WriteString(p.Warn("(hidden)"))
		}
		b.WriteString("\n")

		if o.Keywords {
			b.WriteString("Keywords: ")
			if len(e.Keywords) == 0 {
				b.WriteString("-")
			}
			for i, k := range e.Keywords {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(p.Accent(k))
			}
			b.WriteString("\n")
		}

		if o.Content {
			fmt.Fprintf(&b, "%s\n", e.Content)
		}
		b.WriteString("\n")
	}
	if len(entries) > 0 {
		fmt.Fprintf(&b, "%s\n", rule)
	}
	fmt.Fprintf(&b, "Found %s %s.\n", p.Accent(fmt.Sprint(len(entries))), plural(len(entries)))

	_, err := io.WriteString(w, b.String())
	return err
}

// Changed prints how many entries a hide or unhide touched.
func Changed(w io.Writer, n int, color bool) error {
	_, err := fmt.Fprintf(w, "Changed %s %s.\n", NewPainter(color).Accent(fmt.Sprint(n)), plural(n))
	return err
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func plural(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}
