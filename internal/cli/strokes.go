package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/strokecap/internal/stroke"
)

// StrokeSummary is one stroke in command output.
type StrokeSummary struct {
	ID            string  `json:"id"`
	GroupID       string  `json:"group_id"`
	Slot          int     `json:"slot"`
	Brush         string  `json:"brush"`
	Size          float32 `json:"size"`
	Points        int     `json:"points"`
	GroupContinue bool    `json:"group_continue"`
	HeadMs        uint32  `json:"head_ms"`
}

func summarize(s stroke.Stroke) StrokeSummary {
	return StrokeSummary{
		ID:            s.ID,
		GroupID:       s.GroupID,
		Slot:          s.Slot,
		Brush:         s.BrushName,
		Size:          s.BrushSize,
		Points:        len(s.ControlPoints),
		GroupContinue: s.Flags.Has(stroke.FlagIsGroupContinue),
		HeadMs:        s.HeadTimestampMs(),
	}
}

// NewStrokesCommand creates the strokes command.
func NewStrokesCommand(rootOpts *RootOptions) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "strokes",
		Short: "List the strokes in a sketch database",
		Long: `List live strokes in finalization order. Undone strokes are hidden.

Example:
  strokecap strokes --db sketch.db
  strokecap strokes --db sketch.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listStrokes(rootOpts, database, cmd)
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to SQLite sketch database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func listStrokes(opts *RootOptions, database string, cmd *cobra.Command) error {
	st, err := openStore(database)
	if err != nil {
		return err
	}
	defer st.Close()

	strokes, err := st.ReadStrokes(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read strokes", err)
	}

	summaries := make([]StrokeSummary, len(strokes))
	for i, s := range strokes {
		summaries[i] = summarize(s)
	}

	p := opts.printer()
	var b strings.Builder
	for _, s := range summaries {
		cont := ""
		if s.GroupContinue {
			cont = " +group"
		}
		fmt.Fprintf(&b, "%s  group=%s slot=%d brush=%s points=%d%s\n",
			s.ID, s.GroupID, s.Slot, s.Brush, s.Points, cont)
	}
	b.WriteString(p.Sprintf("%d strokes\n", len(summaries)))

	return opts.formatter(cmd).Success(summaries, b.String())
}
