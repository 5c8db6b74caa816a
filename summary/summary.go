// Package summary reports which samples contribute coverage to which
// contigs, as a flat CSV suitable for spreadsheets and downstream
// joins.
package summary

import (
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/megjohnson1999/contig-coverage-viewer/coverage"
)

// DefaultMinMean is the default mean-coverage floor below which a sample
// is not counted as contributing to a contig.
const DefaultMinMean = 0.1

// Row is one (contig, contributing sample) pair.
type Row struct {
	Contig          string  `csv:"contig"`
	Sample          string  `csv:"sample"`
	Rank            int     `csv:"rank"`
	MeanCoverage    float64 `csv:"mean_coverage"`
	MaxCoverage     float64 `csv:"max_coverage"`
	SamplesOnContig int     `csv:"samples_on_contig"`
}

// Build lists, for every contig in the artifact, the samples whose mean
// coverage exceeds minMean, ranked by mean descending.  Contigs with the
// most contributing samples come first (the most broadly supported
// contigs lead the report); ties break by contig name.
func Build(art *coverage.Artifact, minMean float64) []Row {
	type contigRows struct {
		contig string
		rows   []Row
	}
	var perContig []contigRows
	for contig, tracks := range art.Contigs {
		var rows []Row
		for sample, track := range tracks {
			if track.Stats.Mean > minMean {
				rows = append(rows, Row{
					Contig:       contig,
					Sample:       sample,
					MeanCoverage: track.Stats.Mean,
					MaxCoverage:  track.Stats.Max,
				})
			}
		}
		if len(rows) == 0 {
			continue
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].MeanCoverage != rows[j].MeanCoverage {
				return rows[i].MeanCoverage > rows[j].MeanCoverage
			}
			return rows[i].Sample < rows[j].Sample
		})
		for i := range rows {
			rows[i].Rank = i + 1
			rows[i].SamplesOnContig = len(rows)
		}
		perContig = append(perContig, contigRows{contig: contig, rows: rows})
	}
	sort.Slice(perContig, func(i, j int) bool {
		if len(perContig[i].rows) != len(perContig[j].rows) {
			return len(perContig[i].rows) > len(perContig[j].rows)
		}
		return perContig[i].contig < perContig[j].contig
	})
	var all []Row
	for _, c := range perContig {
		all = append(all, c.rows...)
	}
	return all
}

// WriteCSV writes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "summary: writing CSV")
	}
	return nil
}
