package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/model"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>...",
		Short: "Show entries by id",
		Long:  "Show entries by id, hidden ones included.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runShow,
	}

	addDisplayFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	found, missing, err := s.diary.ShowEntries(cmd.Context(), ids)
	if err != nil {
		return err
	}

	if err := writeEntries(cmd, found, displayOptions(cmd, s)); err != nil {
		return err
	}

	for _, id := range missing {
		printErr(cmd.ErrOrStderr(), fmt.Errorf("entry %d: %w", id, model.ErrNotFound))
	}
	if len(missing) > 0 {
		return errReported
	}
	return nil
}
