package coverage

import (
	"runtime"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
)

// ContigMeta is externally supplied sequence metadata.  Length is
// authoritative: intervals extending past it are clipped or discarded by
// the builder.
type ContigMeta struct {
	Name   string
	Length int
}

// Run executes the full pipeline: stream every source, expand each
// (contig, sample) pair to a dense series, compute its statistics, drop
// uninformative pairs, bin the survivors, and assemble the artifact.
//
// Sources are processed in the given order; two sources whose filenames
// normalize to the same sample are merged in that order.  Records for
// contigs absent from metas are excluded with a warning.  An unreadable
// source aborts the run.  Contigs are processed concurrently
// (opts.Parallelism jobs, 0 = NumCPU); output is deterministic
// regardless of parallelism.
func Run(metas []ContigMeta, sources []string, opts Opts) (*Artifact, error) {
	if opts.MaxBins <= 0 {
		return nil, errors.Errorf("coverage.Run: MaxBins must be positive, got %d", opts.MaxBins)
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	metaMap := make(map[string]int, len(metas))
	for _, m := range metas {
		metaMap[m.Name] = m.Length
	}

	// intervals[contig][sample], each slice in file-processing order.
	intervals := make(map[string]map[string][]Interval)
	sampleSet := make(map[string]bool)
	missing := make(map[string]bool)

	log.Printf("coverage.Run: processing %d coverage source(s)", len(sources))
	for _, path := range sources {
		sample := SampleName(path)
		sampleSet[sample] = true
		err := ScanIntervalsFromPath(path, func(iv Interval) error {
			if _, ok := metaMap[iv.Contig]; !ok {
				if !missing[iv.Contig] {
					missing[iv.Contig] = true
					log.Error.Printf("coverage.Run: contig %s has coverage but no sequence metadata; excluding it", iv.Contig)
				}
				return nil
			}
			perSample := intervals[iv.Contig]
			if perSample == nil {
				perSample = make(map[string][]Interval)
				intervals[iv.Contig] = perSample
			}
			perSample[sample] = append(perSample[sample], iv)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	allSamples := make([]string, 0, len(sampleSet))
	for sample := range sampleSet {
		allSamples = append(allSamples, sample)
	}
	sort.Strings(allSamples)

	results := make([]map[string]*Track, len(metas))
	nContig := len(metas)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * nContig) / parallelism
		endIdx := ((jobIdx + 1) * nContig) / parallelism
		for idx := startIdx; idx < endIdx; idx++ {
			tracks, err := processContig(metas[idx], intervals[metas[idx].Name], &opts)
			if err != nil {
				return err
			}
			results[idx] = tracks
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	art := &Artifact{
		Contigs:    make(map[string]map[string]*Track),
		AllContigs: make([]string, len(metas)),
		AllSamples: allSamples,
	}
	nPairs := 0
	for idx, m := range metas {
		art.AllContigs[idx] = m.Name
		if len(results[idx]) > 0 {
			art.Contigs[m.Name] = results[idx]
			nPairs += len(results[idx])
		}
	}
	log.Printf("coverage.Run: retained %d pair(s) across %d of %d contig(s)", nPairs, len(art.Contigs), len(metas))
	return art, nil
}

// processContig builds, filters, and bins every sample's series for one
// contig.  Samples are visited in sorted order so ties in the MaxSamples
// ranking break deterministically.
func processContig(meta ContigMeta, perSample map[string][]Interval, opts *Opts) (map[string]*Track, error) {
	if len(perSample) == 0 {
		return nil, nil
	}
	if meta.Length <= 0 {
		log.Error.Printf("coverage: contig %s has nonpositive length %d; excluding it", meta.Name, meta.Length)
		return nil, nil
	}
	samples := make([]string, 0, len(perSample))
	for sample := range perSample {
		samples = append(samples, sample)
	}
	sort.Strings(samples)

	type scored struct {
		sample string
		track  *Track
	}
	kept := make([]scored, 0, len(samples))
	for _, sample := range samples {
		series := BuildSeries(meta.Name, sample, meta.Length, perSample[sample])
		st, err := ComputeStats(series)
		if err != nil {
			return nil, err
		}
		if !opts.Retain(st) {
			continue
		}
		kept = append(kept, scored{
			sample: sample,
			track:  &Track{Bins: BinSeries(series, opts.MaxBins), Stats: st},
		})
	}
	if opts.MaxSamples > 0 && len(kept) > opts.MaxSamples {
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].track.Stats.Mean > kept[j].track.Stats.Mean
		})
		kept = kept[:opts.MaxSamples]
	}
	if len(kept) == 0 {
		return nil, nil
	}
	tracks := make(map[string]*Track, len(kept))
	for _, k := range kept {
		tracks[k.sample] = k.track
	}
	return tracks, nil
}
