// Package coverage implements the per-base coverage aggregation pipeline:
// streaming BED-style interval loading, dense per-position expansion,
// summary statistics, informativeness filtering, display binning, and
// assembly of the final viewer artifact.
package coverage

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Interval is one per-base coverage record: depth over the 0-based
// half-open range [Start, End) of a contig.
type Interval struct {
	Contig string
	Start  int
	End    int
	Depth  float64
}

// coverageSuffixes lists the recognized coverage-file suffixes, longest
// first so that compound suffixes are stripped as a unit.  The residual
// filename is the sample name.
var coverageSuffixes = []string{
	".per-base.bed.gz",
	".per-base.bed",
	".regions.bed.gz",
	".regions.bed",
	".bed.gz",
	".bed",
	".gz",
}

// SampleName derives a sample identifier from a coverage-source path by
// stripping the first recognized coverage suffix from its basename.
func SampleName(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	for _, suffix := range coverageSuffixes {
		if strings.HasSuffix(base, suffix) {
			return base[:len(base)-len(suffix)]
		}
	}
	return base
}

// IsCoverageFile reports whether the basename of path carries one of the
// recognized coverage suffixes.
func IsCoverageFile(path string) bool {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	for _, suffix := range coverageSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' '
// is treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ScanIntervals reads whitespace-delimited coverage records
// (contig, start, end, depth; extra columns ignored) from r, invoking
// emit for each valid record in input order.  Malformed lines are
// skipped with a diagnostic rather than aborting the scan; a source
// yielding zero valid records is not an error.  source is used only in
// diagnostics.
func ScanIntervals(r io.Reader, source string, emit func(Interval) error) error {
	scanner := bufio.NewScanner(r)
	var tokens [4][]byte
	lineIdx := 0
	nValid := 0
	nSkipped := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken != 4 {
			if nToken == 0 {
				continue
			}
			log.Printf("coverage.ScanIntervals: %s line %d: %d field(s), need 4; skipping", source, lineIdx, nToken)
			nSkipped++
			continue
		}
		start, err := strconv.Atoi(string(tokens[1]))
		if err != nil {
			log.Printf("coverage.ScanIntervals: %s line %d: bad start %q; skipping", source, lineIdx, tokens[1])
			nSkipped++
			continue
		}
		end, err := strconv.Atoi(string(tokens[2]))
		if err != nil {
			log.Printf("coverage.ScanIntervals: %s line %d: bad end %q; skipping", source, lineIdx, tokens[2])
			nSkipped++
			continue
		}
		depth, err := strconv.ParseFloat(string(tokens[3]), 64)
		if err != nil {
			log.Printf("coverage.ScanIntervals: %s line %d: bad depth %q; skipping", source, lineIdx, tokens[3])
			nSkipped++
			continue
		}
		if start < 0 || end <= start || depth < 0 {
			log.Printf("coverage.ScanIntervals: %s line %d: invalid record [%d, %d) depth %g; skipping", source, lineIdx, start, end, depth)
			nSkipped++
			continue
		}
		if err := emit(Interval{
			Contig: string(tokens[0]),
			Start:  start,
			End:    end,
			Depth:  depth,
		}); err != nil {
			return err
		}
		nValid++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "coverage.ScanIntervals: %s", source)
	}
	if nSkipped > 0 {
		log.Printf("coverage.ScanIntervals: %s: skipped %d malformed line(s)", source, nSkipped)
	}
	if nValid == 0 {
		log.Printf("coverage.ScanIntervals: %s: no valid records", source)
	}
	return nil
}

// ScanIntervalsFromPath is a wrapper for ScanIntervals that opens path,
// transparently decompressing gzip sources.  An unopenable or
// undecompressable source is a hard error.
func ScanIntervalsFromPath(path string, emit func(Interval) error) (err error) {
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return errors.Wrapf(err, "coverage: cannot open %s", path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return errors.Wrapf(err, "coverage: cannot decompress %s", path)
		}
	}
	return ScanIntervals(reader, path, emit)
}
