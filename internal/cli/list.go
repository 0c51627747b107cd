package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/diary"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	addDisplayFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	hidden, _ := cmd.Flags().GetBool("hidden")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	o := displayOptions(cmd, s)
	l, err := s.diary.ListEntries(cmd.Context(), diary.ListOptions{
		IncludeHidden: hidden,
		WantIDs:       o.ID,
		WantHashes:    o.Hash,
	})
	if err != nil {
		return err
	}

	o.ID, o.Hash = l.WantIDs, l.WantHashes
	return writeEntries(cmd, l.Entries, o)
}
