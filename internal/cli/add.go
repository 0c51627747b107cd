package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/rcliao/didi/internal/input"
	"github.com/rcliao/didi/internal/render"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		Long: `Add an entry. Without --title the title, content and keywords are prompted for.
Content ends with two empty lines; a single empty line stays part of it.
With --title the content is read from stdin the same way and keywords come from --keywords.`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().StringP("title", "t", "", "Entry title (skips the prompts)")
	cmd.Flags().StringP("keywords", "k", "", "Whitespace separated keywords, used with --title")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	keywords, _ := cmd.Flags().GetString("keywords")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	p := render.NewPainter(s.color)
	out := cmd.OutOrStdout()

	var draft input.Draft
	if cmd.Flags().Changed("title") {
		content, err := input.ReadContent(bufio.NewReader(cmd.InOrStdin()))
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}
		draft = input.Draft{Title: title, Content: content, Keywords: input.ParseKeywords(keywords)}
	} else {
		fmt.Fprintf(out, "Welcome %s at '%s'!\n\n", p.Accent(username()), p.Accent(s.diary.Path()))
		draft, err = input.NewCollector(cmd.InOrStdin(), out).Collect()
		if err != nil {
			return err
		}
	}

	e, err := s.diary.AddEntry(cmd.Context(), draft)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Added %s %s!\n", p.Title(e.Title), p.Accent(fmt.Sprintf("[%d]", e.ID)))
	return nil
}

func username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "stranger"
}
