// Package config resolves the run configuration from an optional YAML
// file plus built-in defaults.  The result is a plain value handed to
// the pipeline; nothing here is consulted again after startup.
package config

import (
	"os"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/megjohnson1999/contig-coverage-viewer/coverage"
)

// Config is the resolved run configuration.
type Config struct {
	FastaPath       string  `mapstructure:"fasta_path"`
	CoverageDir     string  `mapstructure:"coverage_dir"`
	OutputPath      string  `mapstructure:"output_path"`
	Title           string  `mapstructure:"title"`
	DatasetName     string  `mapstructure:"dataset_name"`
	MinMeanCoverage float64 `mapstructure:"min_mean_coverage"`
	MinMaxCoverage  float64 `mapstructure:"min_max_coverage"`
	MaxBins         int     `mapstructure:"max_bins"`
	MaxSamples      int     `mapstructure:"max_samples"`
	Parallelism     int     `mapstructure:"parallelism"`
}

// Load reads path if it exists and merges it over the defaults.  A
// missing file is not an error; the defaults are used and a note is
// logged, so a bare invocation in a conventional layout just works.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("fasta_path", "contigs.fasta")
	v.SetDefault("coverage_dir", "coverage")
	v.SetDefault("output_path", "interactive_coverage_viewer.html")
	v.SetDefault("title", "Interactive Contig Coverage Viewer")
	v.SetDefault("dataset_name", "Contig Coverage Analysis")
	v.SetDefault("min_mean_coverage", coverage.DefaultOpts.MinMeanCoverage)
	v.SetDefault("min_max_coverage", coverage.DefaultOpts.MinMaxCoverage)
	v.SetDefault("max_bins", coverage.DefaultOpts.MaxBins)
	v.SetDefault("max_samples", coverage.DefaultOpts.MaxSamples)
	v.SetDefault("parallelism", coverage.DefaultOpts.Parallelism)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "config: reading %s", path)
			}
			log.Printf("config: loaded %s", path)
		} else {
			log.Printf("config: no config file at %s, using defaults", path)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "config: resolving %s", path)
	}
	return cfg, nil
}

// Opts converts the configuration into pipeline options.
func (c *Config) Opts() coverage.Opts {
	return coverage.Opts{
		MinMeanCoverage: c.MinMeanCoverage,
		MinMaxCoverage:  c.MinMaxCoverage,
		MaxBins:         c.MaxBins,
		MaxSamples:      c.MaxSamples,
		Parallelism:     c.Parallelism,
	}
}
