package coverage

import (
	"github.com/grailbio/base/log"
)

// BuildSeries expands the intervals of one (contig, sample) pair into a
// dense per-position series of exactly length values, uncovered
// positions left at 0.  Intervals are applied in input order and
// overwrite any earlier values on their range (last write wins).
//
// An interval overrunning the contig is clipped to length with a
// diagnostic; an interval starting at or past length is discarded with a
// diagnostic.  Neither is fatal.
func BuildSeries(contig, sample string, length int, intervals []Interval) []float64 {
	series := make([]float64, length)
	for _, iv := range intervals {
		if iv.Start >= length {
			log.Printf("coverage.BuildSeries: %s/%s: interval [%d, %d) starts past contig end %d; discarding", contig, sample, iv.Start, iv.End, length)
			continue
		}
		end := iv.End
		if end > length {
			log.Printf("coverage.BuildSeries: %s/%s: interval [%d, %d) overruns contig end %d; clipping", contig, sample, iv.Start, iv.End, length)
			end = length
		}
		for pos := iv.Start; pos < end; pos++ {
			series[pos] = iv.Depth
		}
	}
	return series
}
