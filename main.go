package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/maastricht-university/labrefine/config"
	"github.com/maastricht-university/labrefine/orchestrator"
	"github.com/maastricht-university/labrefine/phoneme"
)

type options struct {
	configPath string
	jsonLogs   bool
	strict     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string, json bool) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, err
	}
	l.SetLevel(lvl)
	if json {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "labrefine <input_dir>",
		Short:        "HTK label refining tool",
		Long:         "Merges adjacent phoneme segments of the same group in .lab files and collapses silence into SP.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	fl := root.Flags()
	fl.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default: config/$CONFIG_ENV/config.yaml if present)")
	fl.StringP("output", "o", "", `output directory (default "refined_labels" inside the input directory)`)
	fl.Float64P("gap", "g", 0.1, "maximum gap between phonemes in seconds")
	fl.IntP("workers", "w", 1, "files processed in parallel")
	fl.String("table", "", "YAML phoneme group table replacing the built-in one")
	fl.Bool("report", false, "write report.json into the output directory")
	fl.Bool("progress", false, "show a progress bar on stderr")
	fl.String("log-level", "info", "debug|info|warn|error")
	fl.BoolVar(&opts.jsonLogs, "json-logs", false, "log as JSON")
	fl.BoolVar(&opts.strict, "strict", false, "exit non-zero if any file fails")

	root.RunE = func(cmd *cobra.Command, args []string) error {
		conf, err := cfg.Load(opts.configPath, cfg.Flags{
			"paths.outputs":          fl.Lookup("output"),
			"refine.max_gap_seconds": fl.Lookup("gap"),
			"refine.phoneme_table":   fl.Lookup("table"),
			"refine.write_report":    fl.Lookup("report"),
			"pipeline.workers":       fl.Lookup("workers"),
			"pipeline.progress":      fl.Lookup("progress"),
			"pipeline.log_level":     fl.Lookup("log-level"),
		})
		if err != nil {
			return err
		}
		log, err := newLogger(stderr, conf.Pipeline.LogLvl, opts.jsonLogs)
		if err != nil {
			return err
		}

		p, err := orchestrator.NewPipeline(conf, log)
		if err != nil {
			return err
		}
		rep, err := p.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Merging completed. %d processed, %d empty, %d failed. Results saved to: %s\n",
			rep.Processed, rep.Empty, rep.Failed, rep.OutputDir)
		if opts.strict && rep.Failed > 0 {
			return fmt.Errorf("%d file(s) failed", rep.Failed)
		}
		return nil
	}

	root.AddCommand(newClassifyCmd(stdout))
	return root
}

func newClassifyCmd(stdout io.Writer) *cobra.Command {
	var tablePath string
	c := &cobra.Command{
		Use:   "classify <phoneme>...",
		Short: "Print the phoneme group selected for each token",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := phoneme.Default()
			if tablePath != "" {
				t, err := phoneme.LoadTableFile(tablePath)
				if err != nil {
					return err
				}
				tbl = t
			}
			for _, a := range args {
				fmt.Fprintf(stdout, "%s\t%s\n", a, tbl.Classify(a))
			}
			return nil
		},
	}
	c.Flags().StringVar(&tablePath, "table", "", "YAML phoneme group table")
	return c
}
