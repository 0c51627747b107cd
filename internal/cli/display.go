package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/render"
)

func addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("nocontent", "n", false, "Don't show content")
	cmd.Flags().BoolP("id", "i", false, "Show id of entry")
	cmd.Flags().BoolP("hash", "H", false, "Show hash of entry")
	cmd.Flags().BoolP("keywords", "k", false, "Show keywords of entry")
	cmd.Flags().BoolP("nodate", "d", false, "Don't show date")
	cmd.Flags().BoolP("hidden", "a", false, "Show hidden entries")
	cmd.Flags().StringP("format", "f", "text", "Output format: text or json")
}

func displayOptions(cmd *cobra.Command, s *session) render.Options {
	noContent, _ := cmd.Flags().GetBool("nocontent")
	id, _ := cmd.Flags().GetBool("id")
	hash, _ := cmd.Flags().GetBool("hash")
	keywords, _ := cmd.Flags().GetBool("keywords")
	noDate, _ := cmd.Flags().GetBool("nodate")

	o := render.DefaultOptions()
	o.Date = !noDate
	o.ID = id
	o.Hash = hash
	o.Keywords = keywords
	o.Content = !noContent
	o.Color = s.color
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		o.Width = render.TerminalWidth(f)
	}
	return o
}

// checkFormat rejects a --format value that is not one of allowed.
func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("%w: unknown format %q (use %s)", model.ErrValidation, format, strings.Join(allowed, " or "))
}

// writeEntries prints entries in the format selected by --format.
func writeEntries(cmd *cobra.Command, entries []model.Entry, o render.Options) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, "text", "json"); err != nil {
		return err
	}
	if format == "json" {
		if entries == nil {
			entries = []model.Entry{}
		}
		return render.JSON(cmd.OutOrStdout(), entries)
	}
	return render.Entries(cmd.OutOrStdout(), entries, o)
}
