package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/chemlab/config"
	"github.com/arloliu/chemlab/experiment"
)

// app carries the state shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "chemlab",
		Short:         "Regression and Taguchi analysis for classroom chemistry experiments",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults are used when omitted)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newFitCmd(),
		a.newPredictCmd(),
		a.newDOECmd(),
		a.newImportCmd(),
		a.newExportCmd(),
		a.newTemplateCmd(),
		a.newConfigCmd(),
	)

	return root
}

func (a *app) setup() error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	if a.configPath == "" {
		a.cfg = config.Default()
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", slog.String("path", a.configPath))

	return nil
}

// readRuns imports the CSV file at path, logging skipped rows.
func (a *app) readRuns(path string) ([]*experiment.Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	runs, stats, err := experiment.ReadCSV(f, experiment.WithImportLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("csv imported",
		slog.String("path", path),
		slog.Int("gas", stats.Gas),
		slog.Int("daniell", stats.Daniell),
		slog.Int("skipped", stats.Skipped))

	return runs, nil
}

// createOutput opens path for writing, or returns stdout for "" and "-".
func (a *app) createOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return a.out, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}

func kindFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "kind", string(experiment.KindGas), "experiment kind: gas or daniell")
}
