package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/render"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries",
		Long:  "Export every entry, hidden ones included, as JSON or YAML. The output can be read back with import.",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, "json", "yaml"); err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	entries, err := s.diary.Export(cmd.Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	if format == "json" {
		return render.JSON(cmd.OutOrStdout(), entries)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}
