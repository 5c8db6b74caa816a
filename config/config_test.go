package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "contigs.fasta", cfg.FastaPath)
	assert.Equal(t, "coverage", cfg.CoverageDir)
	assert.Equal(t, "interactive_coverage_viewer.html", cfg.OutputPath)
	assert.Equal(t, 1.0, cfg.MinMeanCoverage)
	assert.Equal(t, 5.0, cfg.MinMaxCoverage)
	assert.Equal(t, 1000, cfg.MaxBins)
	assert.Equal(t, 0, cfg.MaxSamples)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fasta_path: assembly.fasta
coverage_dir: cov_5000bp
min_mean_coverage: 0
min_max_coverage: 0
max_samples: 50
title: "GEMM 057"
`), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "assembly.fasta", cfg.FastaPath)
	assert.Equal(t, "cov_5000bp", cfg.CoverageDir)
	assert.Equal(t, 0.0, cfg.MinMeanCoverage)
	assert.Equal(t, 0.0, cfg.MinMaxCoverage)
	assert.Equal(t, 50, cfg.MaxSamples)
	assert.Equal(t, "GEMM 057", cfg.Title)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1000, cfg.MaxBins)
	assert.Equal(t, "Contig Coverage Analysis", cfg.DatasetName)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestOptsConversion(t *testing.T) {
	cfg := &Config{
		MinMeanCoverage: 2.5,
		MinMaxCoverage:  7,
		MaxBins:         500,
		MaxSamples:      10,
		Parallelism:     4,
	}
	opts := cfg.Opts()
	assert.Equal(t, 2.5, opts.MinMeanCoverage)
	assert.Equal(t, 7.0, opts.MinMaxCoverage)
	assert.Equal(t, 500, opts.MaxBins)
	assert.Equal(t, 10, opts.MaxSamples)
	assert.Equal(t, 4, opts.Parallelism)
}
