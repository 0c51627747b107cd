package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/render"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the database",
		Long:  "Create the diary database. Fails if one already exists unless --force is given, which re-applies the schema and keeps existing entries.",
		Args:  cobra.NoArgs,
		RunE:  runCreate,
	}

	cmd.Flags().Bool("force", false, "Re-initialize an existing database")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	if err := s.diary.Initialize(cmd.Context(), force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created database at '%s'!\n", render.NewPainter(s.color).Accent(s.diary.Path()))
	return nil
}
