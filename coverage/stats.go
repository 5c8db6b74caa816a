package coverage

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// SeriesStats summarizes a full-resolution dense series.  Uncovered
// positions count as zeros, so Mean reflects coverage over the whole
// contig, not only over covered bases.  Stats are always computed before
// binning; displayed values are exact regardless of downsampling.
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// ComputeStats derives SeriesStats from a dense series.  For an
// even-length series the median is the average of the two middle values.
func ComputeStats(series []float64) (SeriesStats, error) {
	if len(series) == 0 {
		return SeriesStats{}, errors.New("coverage.ComputeStats: empty series")
	}
	data := stats.Float64Data(series)
	mean, err := data.Mean()
	if err != nil {
		return SeriesStats{}, errors.Wrap(err, "coverage.ComputeStats: mean")
	}
	median, err := data.Median()
	if err != nil {
		return SeriesStats{}, errors.Wrap(err, "coverage.ComputeStats: median")
	}
	max, err := data.Max()
	if err != nil {
		return SeriesStats{}, errors.Wrap(err, "coverage.ComputeStats: max")
	}
	return SeriesStats{Mean: mean, Median: median, Max: max}, nil
}
