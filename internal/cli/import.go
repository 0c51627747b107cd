package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/render"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import entries from an export",
		Long: `Import entries from JSON or YAML produced by export (file or stdin).
Entries keep their creation time and hidden flag; entries already present are skipped
and entries whose hash does not match their fields are rejected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("format", "f", "", "Input format: json or yaml (default: from file extension, else json)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if format == "" {
			format = formatFromExt(args[0])
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read input: %w: %w", model.ErrIO, err)
	}

	if format == "" {
		format = "json"
	}
	entries, err := decodeEntries(data, format)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	res, err := s.diary.Import(cmd.Context(), entries)
	if err != nil {
		return err
	}

	for _, f := range res.Failed {
		printErr(cmd.ErrOrStderr(), fmt.Errorf("%q: %w", f.Title, f.Err))
	}
	p := render.NewPainter(s.color)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s, skipped %s, failed %s.\n",
		p.Accent(fmt.Sprint(len(res.Imported))),
		p.Accent(fmt.Sprint(len(res.Skipped))),
		p.Accent(fmt.Sprint(len(res.Failed))))

	if len(res.Failed) > 0 {
		return errReported
	}
	return nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func decodeEntries(data []byte, format string) ([]model.Entry, error) {
	var entries []model.Entry
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &entries)
	case "yaml":
		err = yaml.Unmarshal(data, &entries)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (use json or yaml)", model.ErrValidation, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", model.ErrValidation, format, err)
	}
	return entries, nil
}
