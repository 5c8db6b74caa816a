package coverage

// Opts controls filtering, binning, and parallelism for a pipeline run.
// It is an explicit value passed into each stage; there is no ambient
// configuration state.
type Opts struct {
	// MinMeanCoverage is the inclusive lower bound on a pair's mean
	// coverage for it to be retained.  Heuristic, not biologically
	// derived.
	MinMeanCoverage float64
	// MinMaxCoverage is the inclusive lower bound on a pair's maximum
	// coverage.  Setting both MinMeanCoverage and MinMaxCoverage to 0
	// retains every pair unconditionally.
	MinMaxCoverage float64
	// MaxBins caps the number of bins a contig's series is downsampled
	// to for display.  Series no longer than MaxBins are kept at full
	// resolution.
	MaxBins int
	// MaxSamples, if positive, keeps only the top MaxSamples retained
	// samples per contig, ranked by mean coverage descending.  0 keeps
	// all retained samples.
	MaxSamples int
	// Parallelism is the number of contigs processed concurrently.
	// 0 means runtime.NumCPU().
	Parallelism int
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	MinMeanCoverage: 1.0,
	MinMaxCoverage:  5.0,
	MaxBins:         1000,
	MaxSamples:      0,
	Parallelism:     0,
}
