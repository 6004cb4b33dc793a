package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/strokecap/internal/export"
)

// ExportResult reports a finished export.
type ExportResult struct {
	Path    string `json:"path"`
	Plane   string `json:"plane"`
	Strokes int    `json:"strokes"`
}

// NewExportPDFCommand creates the export-pdf command.
func NewExportPDFCommand(rootOpts *RootOptions) *cobra.Command {
	var database, out, plane string

	cmd := &cobra.Command{
		Use:   "export-pdf",
		Short: "Export a sketch as a PDF drawing",
		Long: `Project every live stroke onto a plane and write it to a one-page PDF.

Planes: xy (front), xz (top), zy (side).

Example:
  strokecap export-pdf --db sketch.db --out sketch.pdf --plane xz`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportPDF(rootOpts, database, out, plane, cmd)
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to SQLite sketch database (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PDF path (required)")
	cmd.Flags().StringVar(&plane, "plane", "xy", "projection plane (xy|xz|zy)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExportPDF(opts *RootOptions, database, out, planeName string, cmd *cobra.Command) error {
	plane, err := export.ParsePlane(planeName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid plane", err)
	}

	st, err := openStore(database)
	if err != nil {
		return err
	}
	defer st.Close()

	strokes, err := st.ReadStrokes(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read strokes", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create output", err)
	}
	if err := export.PDF(f, strokes, plane); err != nil {
		f.Close()
		return WrapExitError(ExitFailure, "failed to export", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	text := opts.printer().Sprintf("Exported %d strokes to %s\n", len(strokes), out)
	return opts.formatter(cmd).Success(ExportResult{Path: out, Plane: plane.String(), Strokes: len(strokes)}, text)
}
