package render

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rcliao/didi/internal/store"
)

// maxKeywords caps the keyword rows in the stats table.
const maxKeywords = 10

// Stats prints database statistics as two tables.
func Stats(w io.Writer, st *store.Stats) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Database", st.DBPath},
		{"Size", humanize.Bytes(uint64(st.DBSizeBytes))},
		{"Entries", st.Total},
		{"Visible", st.Visible},
		{"Hidden", st.Hidden},
		{"First entry", when(st.First)},
		{"Last entry", when(st.Last)},
	})
	t.Render()

	if len(st.Keywords) == 0 {
		return nil
	}

	k := table.NewWriter()
	k.SetOutputMirror(w)
	k.SetStyle(table.StyleLight)
	k.AppendHeader(table.Row{"Keyword", "Entries"})
	for i, kc := range st.Keywords {
		if i == maxKeywords {
			k.AppendFooter(table.Row{"...", fmt.Sprintf("%d more", len(st.Keywords)-maxKeywords)})
			break
		}
		k.AppendRow(table.Row{kc.Keyword, kc.Count})
	}
	k.Render()
	return nil
}

func when(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", t.Local().Format(time.RFC1123Z), humanize.Time(*t))
}
