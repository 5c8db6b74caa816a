package coverage

// Retain reports whether a (contig, sample) pair is informative enough
// to keep, applying inclusive lower bounds on mean and maximum coverage.
// With both thresholds at 0 every pair is retained, matching the
// original unfiltered behavior.  Filtering is per pair: a sample kept on
// one contig may be dropped on another.
func (o *Opts) Retain(st SeriesStats) bool {
	return st.Mean >= o.MinMeanCoverage && st.Max >= o.MinMaxCoverage
}
