package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/strokecap/internal/config"
	"github.com/roach88/strokecap/internal/engine"
	"github.com/roach88/strokecap/internal/harness"
	"github.com/roach88/strokecap/internal/pointer"
	"github.com/roach88/strokecap/internal/store"
	"github.com/roach88/strokecap/internal/symmetry"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string // persist strokes here; empty keeps each run in memory
	Filter   string // scenario filter (glob pattern)
	Trace    bool   // print each scenario's event trace
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name    string   `json:"name"`
	Pass    bool     `json:"pass"`
	Strokes int      `json:"strokes"`
	Errors  []string `json:"errors,omitempty"`
	Trace   []string `json:"trace,omitempty"`
}

// RunResult holds the overall result.
type RunResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario|dir>...",
		Short: "Run scripted drawing scenarios",
		Long: `Run YAML drawing scenarios through the stroke-capture engine.

Directories are searched for .yaml and .yml files. With --db the captured
strokes are appended to that sketch database; otherwise each scenario runs
against a fresh in-memory store.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, bad config, etc.)

Examples:
  strokecap run ./scenarios
  strokecap run mirror_line.yaml --db sketch.db --trace
  strokecap run ./scenarios --filter "mirror_*" --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite sketch database")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the event trace of each scenario")

	return cmd
}

func runScenarios(ctx context.Context, opts *RunOptions, paths []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	var files []string
	for _, p := range paths {
		found, err := findScenarioFiles(p, opts.Filter)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to find scenarios", err)
		}
		files = append(files, found...)
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = openStore(opts.Database)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	hopts := harnessOptions(cfg, st)
	hopts.Logger = opts.logger(cmd.ErrOrStderr())
	if st != nil {
		hopts.IDs = engine.UUIDv7Generator{}
	}

	result := RunResult{Scenarios: make([]ScenarioResult, 0, len(files)), Total: len(files)}
	for _, f := range files {
		sr := runScenario(ctx, f, cfg, hopts)
		if !opts.Trace {
			sr.Trace = nil
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if err := opts.formatter(cmd).Success(result, formatRunText(opts, result)); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

// harnessOptions applies the configuration to harness runs. Pool options
// are set per scenario by runScenario.
func harnessOptions(cfg config.Config, st *store.Store) harness.Options {
	settings := cfg.EngineSettings()
	return harness.Options{
		Settings: &settings,
		Store:    st,
		Pool:     &harness.PoolSpec{Capacity: cfg.Pointers.Capacity, User: cfg.Pointers.User},
	}
}

func runScenario(ctx context.Context, path string, cfg config.Config, hopts harness.Options) ScenarioResult {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(path),
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}
	if cfg.StraightEdge.Enabled {
		scenario.StraightEdge = true
	}

	// Each run needs its own symmetry engine; the pool keeps a pointer to it.
	hopts.PoolOptions = []pointer.PoolOption{pointer.WithSymmetry(
		symmetry.New(symmetry.WithDebugLayout(cfg.Symmetry.DebugCount, cfg.DebugOffset())),
	)}

	result, err := harness.RunWithOptions(ctx, scenario, hopts)
	if err != nil {
		return ScenarioResult{
			Name:   scenario.Name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	trace := make([]string, len(result.Trace))
	for i, ev := range result.Trace {
		trace[i] = ev.String()
	}
	return ScenarioResult{
		Name:    scenario.Name,
		Pass:    result.Pass,
		Strokes: len(result.Strokes),
		Errors:  result.Errors,
		Trace:   trace,
	}
}

func formatRunText(opts *RunOptions, r RunResult) string {
	if r.Total == 0 {
		return "No scenarios found.\n"
	}
	p := opts.printer()

	var b strings.Builder
	for _, s := range r.Scenarios {
		mark := "✓"
		if !s.Pass {
			mark = "✗"
		}
		b.WriteString(p.Sprintf("%s %s (%d strokes)\n", mark, s.Name, s.Strokes))
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "  %s\n", strings.ReplaceAll(strings.TrimRight(e, "\n"), "\n", "\n  "))
		}
		for _, line := range s.Trace {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	b.WriteString(p.Sprintf("\n%d passed, %d failed, %d total\n", r.Passed, r.Failed, r.Total))
	return b.String()
}

// findScenarioFiles returns path itself if it is a file, or every YAML file
// below it if it is a directory, sorted by walk order.
func findScenarioFiles(path string, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(p), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, p)
		return nil
	})
	return files, err
}
