package coverage

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestComputeStatsTwoIntervalScenario(t *testing.T) {
	series := BuildSeries("k1", "s1", 119, []Interval{
		{Contig: "k1", Start: 0, End: 25, Depth: 1.0},
		{Contig: "k1", Start: 25, End: 119, Depth: 2.0},
	})
	st, err := ComputeStats(series)
	assert.NoError(t, err)
	expect.EQ(t, st.Mean, (25*1.0+94*2.0)/119)
	expect.EQ(t, st.Median, 2.0)
	expect.EQ(t, st.Max, 2.0)
}

func TestComputeStatsAllZero(t *testing.T) {
	st, err := ComputeStats(make([]float64, 100))
	assert.NoError(t, err)
	expect.EQ(t, st, SeriesStats{})
}

func TestComputeStatsEvenLengthMedian(t *testing.T) {
	st, err := ComputeStats([]float64{0, 1, 2, 3})
	assert.NoError(t, err)
	expect.EQ(t, st.Median, 1.5)
	expect.EQ(t, st.Mean, 1.5)
	expect.EQ(t, st.Max, 3.0)
}

func TestComputeStatsEmpty(t *testing.T) {
	_, err := ComputeStats(nil)
	expect.True(t, err != nil)
}

func TestComputeStatsMaxBoundsMean(t *testing.T) {
	series := []float64{0, 0, 4, 10, 2}
	st, err := ComputeStats(series)
	assert.NoError(t, err)
	expect.True(t, st.Max >= st.Mean)
	expect.True(t, st.Mean >= 0)
}
