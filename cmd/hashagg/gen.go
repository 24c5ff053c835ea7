package main

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-sif/hashagg/datasource"
)

type genConfig struct {
	Output string
	Format string
	datasource.GenerateOptions
}

func newGenCommand() *cobra.Command {
	conf := genConfig{Format: string(datasource.Raw)}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic key set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(conf, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.IntVar(&conf.N, "n", 1000000, "number of keys to generate")
	f.IntVar(&conf.Cardinality, "cardinality", 1000, "number of distinct keys to draw from")
	f.IntVar(&conf.RunLength, "run-length", 1, "maximum length of runs of repeated keys")
	f.Int64Var(&conf.Seed, "seed", 1, "random seed")
	f.StringVar(&conf.Format, "format", conf.Format, "output format: raw, lz4, zstd or jsonl")
	f.StringVar(&conf.Output, "output", "", "file to write keys to (defaults to stdout)")
	return cmd
}

func generate(conf genConfig, stdout io.Writer) (err error) {
	format, err := datasource.ParseFormat(conf.Format)
	if err != nil {
		return err
	}
	keys, err := datasource.Generate(conf.GenerateOptions)
	if err != nil {
		return err
	}
	w := stdout
	if conf.Output != "" {
		var f *os.File
		if f, err = os.Create(conf.Output); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := datasource.WriteKeys(bw, format, keys); err != nil {
		return err
	}
	return bw.Flush()
}
