// Package cli implements the didi CLI commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/didi/internal/config"
	"github.com/rcliao/didi/internal/diary"
	"github.com/rcliao/didi/internal/logging"
	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/render"
)

// errReported is returned by commands that already printed their errors;
// it only turns into a non-zero exit status.
var errReported = errors.New("errors reported")

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "didi",
		Short:         "A small CLI diary used to document your life",
		Long:          "A small CLI diary used to document your life. Entries live in a local, unencrypted SQLite file.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().String("db", "", "Database path (default: $DIDI_URL or ~/"+config.DefaultFileName+")")
	root.PersistentFlags().BoolP("verbose", "v", false, "Debug logging on stderr")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")

	root.AddCommand(
		newCreateCmd(),
		newAddCmd(),
		newListCmd(),
		newSearchCmd(),
		newShowCmd(),
		newHideCmd("hide", "Hide one or more entries", true),
		newHideCmd("unhide", "Unhide one or more entries", false),
		newVerifyCmd(),
		newStatsCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			printErr(root.ErrOrStderr(), err)
		}
		return 1
	}
	return 0
}

// session is what a command needs to run: the diary handle, a logger and
// the output preferences.
type session struct {
	diary *diary.Diary
	log   *zap.Logger
	color bool
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	color := cfg.Color() && !noColor && isTerminal(cmd.OutOrStdout())

	return &session{
		diary: diary.New(dbPath, log),
		log:   log,
		color: color,
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && render.IsTerminal(f)
}

func printErr(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s: %v\n", model.Kind(err), err)
}

// parseIDs parses positive entry ids.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: id %q is not a positive number", model.ErrValidation, a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
