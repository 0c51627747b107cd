package cli

import (
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search for entries",
		Long: `Search entries by title and keywords. An entry matches when any term is part of
its title or of one of its keywords, ignoring case. Results keep creation order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	addDisplayFlags(cmd)

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	hidden, _ := cmd.Flags().GetBool("hidden")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	entries, err := s.diary.SearchEntries(cmd.Context(), args, hidden)
	if err != nil {
		return err
	}

	return writeEntries(cmd, entries, displayOptions(cmd, s))
}
