package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codelint/internal/logging"
	"github.com/yaklabco/codelint/internal/ui/pretty"
	"github.com/yaklabco/codelint/pkg/config"
	"github.com/yaklabco/codelint/pkg/engine/simple"
	"github.com/yaklabco/codelint/pkg/linter"
	"github.com/yaklabco/codelint/pkg/protocol"
	"github.com/yaklabco/codelint/pkg/runner"
)

// ErrIssuesFound is returned when the check finds issues. It signals
// the exit code and carries no message worth logging.
var ErrIssuesFound = errors.New("issues found")

type checkFlags struct {
	fix     bool
	strict  bool
	jobs    int
	format  string
	ignore  []string
	disable []string
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Analyze source files",
		Long: `Analyze JavaScript and TypeScript files for issues.

By default, checks all supported files under the current directory,
skipping node_modules and other ignored paths. Specify paths to check
specific files or directories.

Examples:
  codelint check                 # Check current directory
  codelint check src/ lib/       # Check specific directories
  codelint check src/app.ts      # Check a single file
  codelint check --fix           # Check and write fixes to disk
  codelint check --format json   # Output as JSON for CI
  codelint check --strict        # Non-error issues also fail the run`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.fix, "fix", false, "write fixes back to disk")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings and notes")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = one per CPU)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "additional ignore patterns")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule codes to disable")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(ctx, workDir, configPath)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	applyFlagOverrides(cmd, cfg, flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	eng := simple.New(simple.Config{
		Fix:           cfg.Fix,
		DisabledRules: cfg.DisabledRules(),
	})
	lint := linter.New(eng)

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	opts := cfg.RunnerOptions(roots)

	logger.Debug("starting check",
		logging.FieldRoots, roots,
		logging.FieldJobs, opts.Jobs,
		logging.FieldFix, cfg.Fix,
	)

	start := time.Now()
	result, err := lint.RunFullWith(ctx, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	logger.Debug("check complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesAnalyzed, result.Stats.FilesAnalyzed,
		logging.FieldDiagnostics, result.Stats.Diagnostics,
		logging.FieldDuration, time.Since(start),
	)

	if err := renderResult(cmd, result, flags.format); err != nil {
		return err
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}

// applyFlagOverrides layers CLI flags over the loaded configuration.
// Flags take precedence over file values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cfg.Fix = flags.fix
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	for _, code := range flags.disable {
		rc := cfg.Rules[code]
		off := false
		rc.Enabled = &off
		cfg.Rules[code] = rc
	}
}

// checkReport is the JSON output shape for CI consumers.
type checkReport struct {
	Files map[string][]protocol.Diagnostic `json:"files"`
	Stats statsReport                      `json:"stats"`
}

type statsReport struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesAnalyzed   int `json:"filesAnalyzed"`
	FilesClean      int `json:"filesClean"`
	FilesFixed      int `json:"filesFixed"`
	FilesFailed     int `json:"filesFailed"`
	Diagnostics     int `json:"diagnostics"`
}

func renderResult(cmd *cobra.Command, result *runner.Result, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		report := checkReport{
			Files: result.ToMap(),
			Stats: statsReport(result.Stats),
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil

	case "text":
		color, _ := cmd.Flags().GetString("color")
		styles := pretty.NewStyles(pretty.IsColorEnabled(color, os.Stdout))

		files := make([]runner.FileResult, 0, len(result.Files))
		for _, file := range result.Files {
			if !file.Clean() {
				files = append(files, file)
			}
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

		for _, file := range files {
			fmt.Fprintln(out, styles.FormatFileHeader(file.Path, len(file.Diagnostics)))
			for _, diag := range file.Diagnostics {
				fmt.Fprint(out, styles.FormatDiagnostic(file.Path, diag))
			}
			fmt.Fprintln(out)
		}
		if len(files) > 0 {
			fmt.Fprintln(out, styles.Divider(pretty.TerminalWidth(os.Stdout)))
		}
		fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
		return nil

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
