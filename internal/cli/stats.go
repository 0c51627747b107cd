package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/render"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	cmd.Flags().StringP("format", "f", "text", "Output format: text or json")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, "text", "json"); err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	st, err := s.diary.Stats(cmd.Context())
	if err != nil {
		return err
	}

	if format == "json" {
		return render.JSON(cmd.OutOrStdout(), st)
	}
	return render.Stats(cmd.OutOrStdout(), st)
}
