package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/chemlab/archive"
	"github.com/arloliu/chemlab/config"
	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/format"
)

func (a *app) newImportCmd() *cobra.Command {
	var csvPath, outPath, compression string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV of runs into a compressed archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ct := a.cfg.CompressionType()
			if compression != "" {
				var err error
				if ct, err = format.ParseCompression(compression); err != nil {
					return err
				}
			}

			runs, err := a.readRuns(csvPath)
			if err != nil {
				return err
			}

			store := experiment.NewStore()
			cancel := store.OnChange(func() {
				a.logger.Debug("store updated", slog.Int("runs", store.Len()))
			})
			defer cancel()
			store.Add(runs...)

			data, err := archive.Encode(store.Runs(),
				archive.WithCompression(ct),
				archive.WithBigEndian(a.cfg.Archive.BigEndian),
				archive.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil { //nolint: gosec
				return err
			}

			gas := len(store.Runs(experiment.KindGas))
			fmt.Fprintf(a.out, "archived %d runs (%d gas, %d daniell) to %s, %d bytes, %s\n",
				store.Len(), gas, store.Len()-gas, outPath, len(data), ct)

			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file of recorded runs")
	cmd.Flags().StringVar(&outPath, "out", "", "archive file to write")
	cmd.Flags().StringVar(&compression, "compression", "", "none, zstd, s2 or lz4 (default from config)")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (a *app) newExportCmd() *cobra.Command {
	var inPath, csvPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Summarize an archive and optionally write its runs as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(inPath)
			if err != nil {
				return err
			}

			h, err := archive.ReadHeader(data)
			if err != nil {
				return fmt.Errorf("%s: %w", inPath, err)
			}
			runs, err := archive.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", inPath, err)
			}

			if csvPath == "" {
				gas := len(experiment.FilterKind(runs, experiment.KindGas))
				fmt.Fprintf(a.out, "archive v%d, %s, %d runs (%d gas, %d daniell)\n",
					h.Version, h.Compression, len(runs), gas, len(runs)-gas)

				return nil
			}

			w, closeFn, err := a.createOutput(csvPath)
			if err != nil {
				return err
			}
			if err := experiment.WriteCSV(w, runs); err != nil {
				_ = closeFn()
				return err
			}

			return closeFn()
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "archive file to read")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write runs as CSV to this file, - for stdout")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func (a *app) newTemplateCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a CSV import template with an example row",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := experiment.ParseKind(kind)
			if err != nil {
				return err
			}

			return experiment.WriteTemplate(a.out, k)
		},
	}
	kindFlag(cmd, &kind)

	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(a.out, a.cfg)
		},
	}
}
