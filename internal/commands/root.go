package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/siereport/internal/buildinfo"
	"github.com/cleared-dev/siereport/internal/config"
	"github.com/cleared-dev/siereport/internal/document"
	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/logger"
	"github.com/cleared-dev/siereport/internal/report"
	"github.com/cleared-dev/siereport/internal/runlog"
)

// Environment variables read after .env is loaded.
const (
	EnvConfig   = "SIEREPORT_CONFIG"
	EnvLogLevel = "SIEREPORT_LOG_LEVEL"
)

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string
	format     string
	query      string
	pretty     bool
	year       string
	all        bool

	cfg   *config.Config
	log   zerolog.Logger
	runID string
	now   func() time.Time

	// filled in by the command that ran, for the run log
	document string
	failed   []string
	findings int
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:     "siereport",
		Short:   "Financial statements from parsed SIE files",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.FileName, "config file (env "+EnvConfig+")")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (env "+EnvLogLevel+")")
	pf.StringVarP(&a.format, "format", "f", FormatJSON, "output format: json, markdown or csv")
	pf.StringVarP(&a.query, "query", "q", "", "JSONPath expression applied to json output")
	pf.BoolVar(&a.pretty, "pretty", false, "render markdown output for the terminal")
	pf.StringVarP(&a.year, "year", "y", "", `relative year, e.g. "0" or "-1" (default from config)`)
	pf.BoolVar(&a.all, "all", false, "include accounts with zero balance")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newBalanceCommand(a))
	rootCmd.AddCommand(newIncomeCommand(a))
	rootCmd.AddCommand(newLedgerCommand(a))
	rootCmd.AddCommand(newHistoryCommand(a))
	rootCmd.AddCommand(newRatiosCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newCheckCommand(a))
	rootCmd.AddCommand(newAccountsCommand(a))

	for _, c := range rootCmd.Commands() {
		a.recorded(c)
	}

	return rootCmd
}

// setup loads .env and the config and attaches a run-scoped logger to the
// command context.
func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if !cmd.Flags().Changed("config") {
		if v := os.Getenv(EnvConfig); v != "" {
			a.configPath = v
		}
	}

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if level == "" {
		level = cfg.Log.Level
	}

	a.runID = uuid.NewString()
	a.log = logger.WithRun(logger.New(level), a.runID, "")
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))

	if a.year != "" {
		if _, ok := id.ParseRelativeYear(a.year); !ok {
			return fmt.Errorf("invalid year %q: want an integer between %d and %d", a.year, id.MinRelativeYear, id.MaxRelativeYear)
		}
	}
	return nil
}

// options returns the report options from flags over config.
func (a *app) options() report.Options {
	opts := a.cfg.ReportOptions()
	if a.year != "" {
		opts.Year = a.year
	}
	if a.all {
		opts.NonZeroOnly = false
	}
	return opts
}

// load reads the document and derives the shared report context.
func (a *app) load(cmd *cobra.Command, path string) (*report.Context, error) {
	a.document = path
	a.log = logger.WithRun(a.log, "", path)
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))

	doc, err := document.Load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	if doc.Metadata.Currency == "" {
		doc.Metadata.Currency = a.cfg.Currency
	}
	rc := report.NewContext(doc, a.now())
	a.log.Debug().
		Int("reference_year", rc.Reference.Year).
		Str("reference_source", rc.Reference.Source).
		Int("accounts", len(rc.Chart.All())).
		Int("transactions", rc.Index.Len()).
		Msg("document loaded")
	return rc, nil
}

// fail records a failed section and logs it.
func (a *app) fail(err error) error {
	var se *report.SectionError
	if errors.As(err, &se) {
		a.failed = append(a.failed, se.Section+": "+se.Message)
		a.log.Error().Str("section", se.Section).Msg(se.Message)
	}
	return err
}

// recorded wraps the command's RunE so that every run, failed or not, is
// appended to the run log.
func (a *app) recorded(cmd *cobra.Command) {
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		a.recordRun(cmd, err)
		return err
	}
}

func (a *app) recordRun(cmd *cobra.Command, runErr error) {
	if a.cfg == nil || a.cfg.Log.RunLog == "" {
		return
	}
	details := strings.Join(a.failed, "; ")
	if runErr != nil && len(a.failed) == 0 {
		details = runErr.Error()
	}
	entry := runlog.Entry{
		Timestamp: a.now(),
		RunID:     a.runID,
		Command:   cmd.Name(),
		Document:  a.document,
		Year:      a.options().Year,
		Failed:    len(a.failed),
		Findings:  a.findings,
		Details:   details,
	}
	if err := runlog.Append(a.cfg.Log.RunLog, []runlog.Entry{entry}); err != nil {
		a.log.Warn().Err(err).Msg("writing run log")
	}
}
