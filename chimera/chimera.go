// Package chimera screens assembled contigs for chimeric joins: contigs
// whose coverage is dominated by different samples along different
// stretches, suggesting the assembler fused fragments from distinct
// community members.  The screen divides each contig into a fixed number
// of segments, finds the leading sample per segment, and scores the
// contig by how many distinct leaders appear.
package chimera

import (
	"sort"

	"github.com/grailbio/base/log"

	"github.com/megjohnson1999/contig-coverage-viewer/coverage"
)

// Opts controls the screening heuristics.
type Opts struct {
	// MinLength skips contigs shorter than this; short contigs produce
	// too few distinct segments to score meaningfully.
	MinLength int
	// Segments is the number of equal stretches each contig is divided
	// into.
	Segments int
	// MinSegmentMean is the minimum mean coverage a sample needs within
	// a segment to be considered a candidate leader there.
	MinSegmentMean float64
	// MinScore is the minimum chimera score (distinct leaders / scored
	// segments) for a contig to be reported.
	MinScore float64
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	MinLength:      1000,
	Segments:       5,
	MinSegmentMean: 5.0,
	MinScore:       0.6,
}

// Candidate is one potentially chimeric contig.
type Candidate struct {
	Contig string
	// Score is distinct segment leaders divided by scored segments, in
	// (0, 1]; 1.0 means every segment had a different dominant sample.
	Score float64
	// Leaders is the number of distinct segment-leading samples.
	Leaders int
}

// Screen scores every contig in the artifact and returns the candidates
// with Score >= opts.MinScore, ordered by score descending (ties broken
// by contig name).  Contig lengths are recovered from the artifact's
// bins, so a decoded artifact screens identically to a fresh one.
func Screen(art *coverage.Artifact, opts Opts) []Candidate {
	if opts.Segments <= 0 {
		log.Printf("chimera.Screen: nonpositive segment count %d, using %d", opts.Segments, DefaultOpts.Segments)
		opts.Segments = DefaultOpts.Segments
	}
	var candidates []Candidate
	for contig, tracks := range art.Contigs {
		length := contigLength(tracks)
		if length < opts.MinLength {
			continue
		}
		samples := make([]string, 0, len(tracks))
		for sample := range tracks {
			samples = append(samples, sample)
		}
		sort.Strings(samples)

		segSize := length / opts.Segments
		leaders := make(map[string]bool)
		scoredSegments := 0
		for seg := 0; seg < opts.Segments; seg++ {
			segStart := seg * segSize
			segEnd := segStart + segSize
			if seg == opts.Segments-1 {
				segEnd = length
			}
			leader := ""
			leaderMean := 0.0
			for _, sample := range samples {
				mean := segmentMean(tracks[sample].Bins, segStart, segEnd)
				if mean >= opts.MinSegmentMean && mean > leaderMean {
					leader = sample
					leaderMean = mean
				}
			}
			if leader != "" {
				leaders[leader] = true
				scoredSegments++
			}
		}
		if scoredSegments == 0 {
			continue
		}
		score := float64(len(leaders)) / float64(scoredSegments)
		if score >= opts.MinScore {
			candidates = append(candidates, Candidate{
				Contig:  contig,
				Score:   score,
				Leaders: len(leaders),
			})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Contig < candidates[j].Contig
	})
	return candidates
}

func contigLength(tracks map[string]*coverage.Track) int {
	for _, track := range tracks {
		return track.Length()
	}
	return 0
}

// segmentMean is the mean coverage over [segStart, segEnd), recovered
// from the binned series by weighting each bin's aggregate by its
// overlap with the segment.
func segmentMean(bins []coverage.Bin, segStart, segEnd int) float64 {
	if segEnd <= segStart {
		return 0
	}
	sum := 0.0
	for _, bin := range bins {
		overlapStart := bin.Start
		if segStart > overlapStart {
			overlapStart = segStart
		}
		overlapEnd := bin.End
		if segEnd < overlapEnd {
			overlapEnd = segEnd
		}
		if overlapEnd > overlapStart {
			sum += bin.Value * float64(overlapEnd-overlapStart)
		}
	}
	return sum / float64(segEnd-segStart)
}
