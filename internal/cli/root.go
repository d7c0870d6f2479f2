package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/csvbreaker/internal/config"
	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
	"github.com/leengari/csvbreaker/internal/engine"
	"github.com/leengari/csvbreaker/internal/logging"
	"github.com/leengari/csvbreaker/internal/report"
	"github.com/leengari/csvbreaker/internal/storage/manager"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

// DotEnvFile is loaded from the working directory before the environment is read
const DotEnvFile = ".env"

type rootFlags struct {
	configPath      string
	stringColumns   []string
	continueOnError bool
	logLevel        string
	seqURL          string
	verbose         bool
	dryRun          bool
}

// NewRootCmd builds the csvbreaker command. The report goes to the
// command's stdout, logs and errors to its stderr.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "csvbreaker <input_dir> <max_columns>",
		Short: "Split wide CSV files into narrower ones",
		Long: `csvbreaker splits every *.csv file in <input_dir> into CSV files of at most
<max_columns> columns. The first column of each file is the key and is repeated
at the front of every output file. Integer columns are written as floats.

Outputs are written to <input_dir>/outputs as <name>_1.csv, <name>_2.csv, ...

WARNING: if <input_dir>/outputs already exists it is deleted with all of its
contents before any file is written. Use --dry-run to see what would be written.

Exit Codes:
  0  - Success (including a folder with no CSV files)
  1  - General error
  2  - CLI usage error (invalid arguments, flags or config)
  3  - Panic or unexpected system error
  10 - Output directory cannot be reset
  11 - Input CSV file cannot be loaded
  12 - Output CSV file cannot be written`,
		Args:         RequireInputAndMaxColumns,
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, args, flags)
			if err != nil {
				return err
			}
			return runPipeline(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &domainerrors.ArgumentError{Argument: "flags", Reason: "invalid flag", Err: err}
	})

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML config file")
	f.StringSliceVar(&flags.stringColumns, "string-columns", nil, "Columns always read as text (default FIPS,ID)")
	f.BoolVar(&flags.continueOnError, "continue-on-error", false, "Skip CSV files that cannot be loaded instead of stopping")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&flags.seqURL, "seq-url", "", "Also ship logs to the Seq server at this URL")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Load and split files but write nothing")

	return cmd
}

// Execute runs the root command with the process arguments
func Execute() error {
	return NewRootCmd().Execute()
}

// buildConfig layers defaults, the config file, the environment and flags
func buildConfig(cmd *cobra.Command, args []string, flags *rootFlags) (config.Config, error) {
	cfg := config.Default()

	if flags.configPath != "" {
		if err := config.LoadFile(flags.configPath, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := config.LoadDotEnv(DotEnvFile); err != nil {
		return cfg, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}
	config.ApplyEnv(&cfg, os.Getenv)

	changed := cmd.Flags().Changed
	if changed("string-columns") {
		cfg.StringColumns = flags.stringColumns
	}
	if changed("continue-on-error") {
		cfg.ContinueOnError = flags.continueOnError
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("seq-url") {
		cfg.Logging.SeqURL = flags.seqURL
	}
	if flags.verbose {
		cfg.Logging.Level = "debug"
	}
	cfg.DryRun = flags.dryRun

	maxColumns, err := config.ParseMaxColumns(args[1])
	if err != nil {
		return cfg, err
	}
	cfg.InputDir = args[0]
	cfg.MaxColumns = maxColumns

	return cfg, cfg.Validate()
}

func runPipeline(cfg config.Config, stdout, stderr io.Writer) error {
	logger, closeLogger := logging.SetupLogger(cfg.Logging, stderr)
	defer closeLogger()

	ws := manager.NewWorkspace(cfg.InputDir)
	eng := engine.New(ws, engine.Options{
		MaxColumns:      cfg.MaxColumns,
		StringColumns:   cfg.StringColumns,
		ContinueOnError: cfg.ContinueOnError,
		DryRun:          cfg.DryRun,
	}, logger)

	eng.AddObserver(engine.NewLoggingObserver(logger))
	eng.AddObserver(report.NewConsole(stdout))

	summary, err := eng.Run()
	if err != nil {
		logger.Error("run failed", "error", err)
		return err
	}
	logger.Debug("run finished", "run_id", summary.RunID, "outputs", summary.Outputs)
	return nil
}
