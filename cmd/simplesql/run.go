package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/oscardepp/SimpleSQL/internal/config"
	"github.com/oscardepp/SimpleSQL/internal/domain/errors"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/executor"
	"github.com/oscardepp/SimpleSQL/internal/logging"
	"github.com/oscardepp/SimpleSQL/internal/output"
	"github.com/oscardepp/SimpleSQL/internal/plan"
	"github.com/oscardepp/SimpleSQL/internal/query/validation"
	"github.com/oscardepp/SimpleSQL/internal/storage"
)

// loadConfig reads the config file and applies flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if opts.dbDir != "" {
		cfg.Database.Dir = opts.dbDir
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.output != "" {
		cfg.Output.Path = opts.output
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDatabase sets up logging and loads the catalog
func openDatabase(opts *options) (*config.Config, *schema.Database, *slog.Logger, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger, closeFn := logging.SetupLogger(cfg.Log)

	if err := config.ValidateDatabaseDir(cfg.Database.Dir); err != nil {
		closeFn()
		return nil, nil, nil, nil, err
	}
	db, err := storage.LoadDatabase(cfg.Database.Dir, logger)
	if err != nil {
		logger.Error("failed to load database", "dir", cfg.Database.Dir, "error", err)
		closeFn()
		return nil, nil, nil, nil, err
	}
	return cfg, db, logger, closeFn, nil
}

func runPlan(cmd *cobra.Command, opts *options, planPath string) (err error) {
	cfg, db, logger, closeFn, err := openDatabase(opts)
	if err != nil {
		return err
	}
	defer closeFn()

	q, err := plan.Load(planPath)
	if err != nil {
		logger.Error("failed to load plan", "path", planPath, "error", err)
		return err
	}

	if err := validation.ValidatePlan(db, q); err != nil {
		logger.Error("plan rejected", "path", planPath, "error", err)
		return err
	}

	w := cmd.OutOrStdout()
	if cfg.Output.Path != "" {
		f, cerr := os.Create(cfg.Output.Path)
		if cerr != nil {
			return fmt.Errorf("failed to create output file: %w", cerr)
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		w = f
	}

	formatter, err := output.New(cfg.Output.Format, w)
	if err != nil {
		return err
	}

	exec := executor.New(db, logger)
	exec.AddObserver(executor.NewLoggingObserver())

	err = exec.Execute(cmd.Context(), q, formatter)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, errors.ErrUnsupportedQuery):
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return nil
	default:
		logger.Error("query failed", "plan", planPath, "internal", errors.IsInternal(err), "error", err)
		return err
	}
}

func listTables(cmd *cobra.Command, opts *options) error {
	_, db, _, closeFn, err := openDatabase(opts)
	if err != nil {
		return err
	}
	defer closeFn()

	printTables(cmd.OutOrStdout(), db)
	return nil
}

func printTables(w io.Writer, db *schema.Database) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"table", "record size", "columns"})

	for _, t := range db.Tables {
		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = fmt.Sprintf("%s %s", c.Name, c.Type)
		}
		table.Append([]string{t.Name, fmt.Sprint(t.RecordSize), strings.Join(cols, ", ")})
	}
	table.Render()
	fmt.Fprintf(w, "Database '%s': %d tables\n", db.Name, len(db.Tables))
}
