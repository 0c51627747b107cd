package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/render"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check entry hashes",
		Long:  "Recompute the hash of every entry and report entries whose stored hash does not match.",
		Args:  cobra.NoArgs,
		RunE:  runVerify,
	}

	cmd.Flags().StringP("format", "f", "text", "Output format: text or json")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, "text", "json"); err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	r, err := s.diary.VerifyEntries(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		if err := render.JSON(out, r); err != nil {
			return err
		}
	} else {
		p := render.NewPainter(s.color)
		for _, e := range r.Mismatched {
			fmt.Fprintf(out, "%s %s hash mismatch\n", p.Warn(fmt.Sprintf("[%d]", e.ID)), e.Title)
		}
		fmt.Fprintf(out, "Checked %s entries, %s mismatched.\n",
			p.Accent(fmt.Sprint(r.Checked)), p.Accent(fmt.Sprint(len(r.Mismatched))))
	}

	if len(r.Mismatched) > 0 {
		return errReported
	}
	return nil
}
