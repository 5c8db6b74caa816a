package coverage

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// json matches encoding/json semantics; in particular map keys are
// emitted sorted, so reruns on identical input serialize byte-identically.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Track is the retained result for one (contig, sample) pair: the binned
// display series plus exact full-resolution statistics.
type Track struct {
	Bins  []Bin       `json:"bins"`
	Stats SeriesStats `json:"stats"`
}

// Length returns the contig length the track's bins cover.
func (t *Track) Length() int {
	if len(t.Bins) == 0 {
		return 0
	}
	return t.Bins[len(t.Bins)-1].End
}

// Artifact is the self-contained output of a pipeline run: retained
// tracks keyed by contig then sample, plus the full contig and sample
// enumerations (including pairs the filter dropped, so a UI can still
// list them).  It holds only derived, compact data; no dense series
// survives into it.
type Artifact struct {
	Contigs    map[string]map[string]*Track `json:"sequences"`
	AllContigs []string                     `json:"allSequenceIds"`
	AllSamples []string                     `json:"allSampleIds"`
}

// EncodeJSON writes the artifact as JSON.  Output is deterministic for a
// given artifact value.
func (a *Artifact) EncodeJSON(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(a); err != nil {
		return errors.Wrap(err, "coverage: encoding artifact")
	}
	return nil
}

// DecodeArtifact reads an artifact previously written by EncodeJSON.
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	a := &Artifact{}
	if err := json.NewDecoder(r).Decode(a); err != nil {
		return nil, errors.Wrap(err, "coverage: decoding artifact")
	}
	return a, nil
}
