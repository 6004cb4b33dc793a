package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strokecap/internal/config"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Valid  bool           `json:"valid"`
	Config *config.Config `json:"config,omitempty"`
	Error  *CLIError      `json:"error,omitempty"`
	Line   int            `json:"line,omitempty"`
}

// NewValidateConfigCommand creates the validate-config command.
func NewValidateConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-config <file>",
		Short: "Validate a CUE configuration file",
		Long: `Check a configuration file against the configuration schema and print
the effective configuration, defaults included.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateConfig(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidateConfig(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := config.Load(path)
	if err != nil {
		var cerr *config.Error
		if !errors.As(err, &cerr) {
			return WrapExitError(ExitCommandError, "failed to validate", err)
		}
		code := ExitFailure
		if cerr.Code == config.ErrCodeRead {
			code = ExitCommandError
		}

		if opts.Format == "json" {
			res := ValidationResult{Error: &CLIError{Code: cerr.Code, Message: cerr.Message}}
			if cerr.Pos.IsValid() {
				res.Line = cerr.Pos.Line()
			}
			if err := formatter.Success(res, ""); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s\n", cerr.Error())
		}
		return WrapExitError(code, "invalid config", err)
	}

	text := fmt.Sprintf("✓ %s is valid\n", path)
	formatter.VerboseLog("pointers: capacity=%d user=%d", cfg.Pointers.Capacity, cfg.Pointers.User)
	return formatter.Success(ValidationResult{Valid: true, Config: &cfg}, text)
}
