package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/render"
)

func newHideCmd(use, short string, hidden bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Long:  short + ". Each id is handled on its own; unknown ids are reported and the rest still change.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHide(cmd, args, hidden)
		},
	}
}

func runHide(cmd *cobra.Command, args []string, hidden bool) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	op := s.diary.UnhideEntries
	if hidden {
		op = s.diary.HideEntries
	}
	res, err := op(cmd.Context(), ids)
	if err != nil {
		return err
	}

	for _, f := range res.Failed {
		printErr(cmd.ErrOrStderr(), f.Err)
	}
	if err := render.Changed(cmd.OutOrStdout(), len(res.Succeeded), s.color); err != nil {
		return err
	}
	if !res.OK() {
		return errReported
	}
	return nil
}
