package cli

import (
	"github.com/spf13/cobra"
)

// UndoResult reports what undo removed.
type UndoResult struct {
	GroupID string `json:"group_id,omitempty"`
	Strokes int    `json:"strokes"`
}

// NewUndoCommand creates the undo command.
func NewUndoCommand(rootOpts *RootOptions) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent stroke group",
		Long: `Undo the most recent logical drawing action: the latest stroke group,
including every symmetry replica and budget continuation drawn with it.

Example:
  strokecap undo --db sketch.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndo(rootOpts, database, cmd)
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to SQLite sketch database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runUndo(opts *RootOptions, database string, cmd *cobra.Command) error {
	st, err := openStore(database)
	if err != nil {
		return err
	}
	defer st.Close()

	group, n, err := st.UndoLastGroup(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to undo", err)
	}

	text := "Nothing to undo.\n"
	if n > 0 {
		text = opts.printer().Sprintf("Undid group %s (%d strokes)\n", group, n)
	}
	return opts.formatter(cmd).Success(UndoResult{GroupID: group, Strokes: n}, text)
}
