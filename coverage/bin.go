package coverage

// Bin summarizes the positions [Start, End) of a dense series by their
// arithmetic mean.  Mean was chosen over max as the representative value
// for smoother visual gradients.
type Bin struct {
	Start int     `json:"start"`
	End   int     `json:"end"`
	Value float64 `json:"value"`
}

// BinSeries downsamples a dense series to at most maxBins contiguous,
// non-overlapping bins covering [0, len(series)) exactly.
//
// When the series fits within maxBins the binning is the identity: one
// single-position bin per value.  Otherwise the series is partitioned
// into maxBins ranges of width floor(len/maxBins), the final bin
// absorbing the remainder so that bin widths sum to the series length.
func BinSeries(series []float64, maxBins int) []Bin {
	length := len(series)
	if length <= maxBins {
		bins := make([]Bin, length)
		for pos, v := range series {
			bins[pos] = Bin{Start: pos, End: pos + 1, Value: v}
		}
		return bins
	}
	width := length / maxBins
	bins := make([]Bin, maxBins)
	for i := 0; i < maxBins; i++ {
		start := i * width
		end := start + width
		if i == maxBins-1 {
			end = length
		}
		sum := 0.0
		for pos := start; pos < end; pos++ {
			sum += series[pos]
		}
		bins[i] = Bin{Start: start, End: end, Value: sum / float64(end-start)}
	}
	return bins
}
