package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/go-sif/hashagg/datasource"
	"github.com/go-sif/hashagg/logging"
	"github.com/go-sif/hashagg/table"
)

// runConfig holds the settings of the run command. Values come from defaultRunConfig,
// then from an optional YAML file, then from flags which were set explicitly.
type runConfig struct {
	N          int    `yaml:"n"`
	Threads    int    `yaml:"threads"`
	Method     int    `yaml:"method"`
	Input      string `yaml:"input"`
	Format     string `yaml:"format"`
	BucketBits uint   `yaml:"bucketBits"`
	MaxEntries int    `yaml:"maxEntries"`
	Verify     bool   `yaml:"verify"`
	Report     string `yaml:"report"`
	LogLevel   string `yaml:"logLevel"`
	LogFormat  string `yaml:"logFormat"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Threads:    1,
		Format:     string(datasource.Raw),
		BucketBits: table.DefaultBucketBits,
		Report:     "text",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// loadRunConfig reads a YAML document on top of the defaults
func loadRunConfig(r io.Reader) (runConfig, error) {
	conf := defaultRunConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return conf, err
	}
	if err := yaml.UnmarshalStrict(data, &conf); err != nil {
		return conf, fmt.Errorf("unable to parse config: %w", err)
	}
	return conf, nil
}

func loadRunConfigFile(path string) (runConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultRunConfig(), err
	}
	defer f.Close()
	return loadRunConfig(f)
}

// overrideFromFlags copies every flag the user set explicitly from flags into conf
func overrideFromFlags(cmd *cobra.Command, flags *runConfig, conf *runConfig) {
	set := cmd.Flags().Changed
	if set("n") {
		conf.N = flags.N
	}
	if set("threads") {
		conf.Threads = flags.Threads
	}
	if set("method") {
		conf.Method = flags.Method
	}
	if set("input") {
		conf.Input = flags.Input
	}
	if set("format") {
		conf.Format = flags.Format
	}
	if set("bucket-bits") {
		conf.BucketBits = flags.BucketBits
	}
	if set("max-entries") {
		conf.MaxEntries = flags.MaxEntries
	}
	if set("verify") {
		conf.Verify = flags.Verify
	}
	if set("report") {
		conf.Report = flags.Report
	}
	if set("log-level") {
		conf.LogLevel = flags.LogLevel
	}
	if set("log-format") {
		conf.LogFormat = flags.LogFormat
	}
}

// newLogger builds the Logger described by conf, writing to w
func newLogger(conf runConfig, w io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLogLevel(conf.LogLevel)
	if err != nil {
		return nil, err
	}
	switch conf.LogFormat {
	case "text":
		return logging.NewLogger(w, level), nil
	case "json":
		return logging.NewJSONLogger(w, level), nil
	default:
		return nil, fmt.Errorf("%s is an unknown log format", conf.LogFormat)
	}
}
