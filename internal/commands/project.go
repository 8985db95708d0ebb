package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-projector/internal/calculation"
	"github.com/nwgo/networth-projector/internal/config"
	"github.com/nwgo/networth-projector/internal/output"
)

func newProjectCommand() *cobra.Command {
	var (
		format  string
		outFile string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "project <plan.yaml>",
		Short: "Run a projection and print the timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(debug)

			parser := config.NewInputParser()
			parser.SetLogger(logger)
			plan, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine := calculation.NewProjectionEngine()
			engine.Logger = logger
			result, err := engine.Project(cmd.Context(), plan)
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)",
					format, strings.Join(output.AvailableFormatterNames(), ", "))
			}
			data, err := formatter.Format(result)
			if err != nil {
				return fmt.Errorf("formatting result: %w", err)
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, data, 0o644); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, console-verbose, csv, json)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable per-year debug logging")
	return cmd
}

func newLogger(debug bool) calculation.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &calculation.SlogLogger{L: slog.New(h)}
}
