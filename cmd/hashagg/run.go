package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/accumulators"
	"github.com/go-sif/hashagg/datasource"
	"github.com/go-sif/hashagg/pipeline"
	"github.com/go-sif/hashagg/pool"
	"github.com/go-sif/hashagg/stats"
)

func newRunCommand() *cobra.Command {
	var configPath string
	flags := defaultRunConfig()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Count the occurrences of every key in a key set, with one or all methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := defaultRunConfig()
			if configPath != "" {
				var err error
				if conf, err = loadRunConfigFile(configPath); err != nil {
					return err
				}
			}
			overrideFromFlags(cmd, &flags, &conf)
			return runBenchmark(conf, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.IntVar(&flags.N, "n", flags.N, "number of keys to read (0 reads the whole input)")
	f.IntVar(&flags.Threads, "threads", flags.Threads, "number of workers")
	f.IntVar(&flags.Method, "method", flags.Method, "method to run, or 0 for all of them")
	f.StringVar(&flags.Input, "input", flags.Input, "file to read keys from (defaults to stdin)")
	f.StringVar(&flags.Format, "format", flags.Format, "input format: raw, lz4, zstd or jsonl")
	f.UintVar(&flags.BucketBits, "bucket-bits", flags.BucketBits, "two-level tables have 2^bucket-bits buckets")
	f.IntVar(&flags.MaxEntries, "max-entries", flags.MaxEntries, "if positive, the maximum size of any hash table")
	f.BoolVar(&flags.Verify, "verify", flags.Verify, "check every result against the distinct input keys")
	f.StringVar(&flags.Report, "report", flags.Report, "where to report timings: text or log")
	f.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "trace, debug, info, warn, error or fatal")
	f.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "text or json")
	f.StringVar(&configPath, "config", "", "YAML file supplying defaults for these flags")
	return cmd
}

func runBenchmark(conf runConfig, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	logger, err := newLogger(conf, stderr)
	if err != nil {
		return err
	}
	var methods []pipeline.Method
	if conf.Method == 0 {
		methods = pipeline.AllMethods()
	} else {
		m, err := pipeline.MethodByID(conf.Method)
		if err != nil {
			return err
		}
		methods = []pipeline.Method{m}
	}
	var reporter stats.Reporter
	switch conf.Report {
	case "text":
		reporter = stats.NewTextReporter(stdout)
	case "log":
		reporter = stats.NewLogReporter(logger)
	default:
		return fmt.Errorf("%s is an unknown report destination", conf.Report)
	}

	keys, err := readInput(conf, stdin)
	if err != nil {
		return err
	}
	logger.Info("read input", "keys", len(keys), "format", conf.Format)

	p, err := pool.New(conf.Threads)
	if err != nil {
		return err
	}
	for _, m := range methods {
		_, err := pipeline.Run(keys, &pipeline.Options{
			Workers:    conf.Threads,
			Method:     m,
			BucketBits: pipeline.Bits(conf.BucketBits),
			MaxEntries: conf.MaxEntries,
			Verify:     conf.Verify,
			Logger:     logger,
			Reporter:   reporter,
			Pool:       p,
		}, accumulators.Counter())
		if err != nil {
			logger.Error("aborting", "method", m.String(), "error", err)
			return err
		}
	}
	return nil
}

func readInput(conf runConfig, stdin io.Reader) ([]hashagg.Key, error) {
	format, err := datasource.ParseFormat(conf.Format)
	if err != nil {
		return nil, err
	}
	r := stdin
	if conf.Input != "" {
		f, err := os.Open(conf.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return datasource.ReadKeys(bufio.NewReader(r), datasource.ReadOptions{Format: format, Count: conf.N})
}
