// Package fasta extracts contig metadata (names and lengths) from
// assembly FASTA files.  Contig names are the stretch of characters
// excluding spaces immediately after '>'; any text after a space is
// ignored, so ">contig_1 flye circular" becomes "contig_1".  Sequence
// data is scanned only to measure it; it is never retained.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Contig is one assembled sequence: its identifier and authoritative
// length in bases.
type Contig struct {
	Name   string
	Length int
}

// Read scans FASTA data and returns the contigs in file order.
func Read(r io.Reader) ([]Contig, error) {
	scanner := bufio.NewScanner(r)
	var contigs []Contig
	seen := make(map[string]bool)
	cur := -1
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			name := strings.Split(line[1:], " ")[0]
			if name == "" {
				return nil, errors.New("fasta.Read: empty contig name")
			}
			if seen[name] {
				return nil, errors.Errorf("fasta.Read: duplicate contig name %s", name)
			}
			seen[name] = true
			contigs = append(contigs, Contig{Name: name})
			cur = len(contigs) - 1
			continue
		}
		if cur < 0 {
			return nil, errors.New("fasta.Read: sequence data before first header")
		}
		contigs[cur].Length += len(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "fasta.Read")
	}
	return contigs, nil
}

// ReadFromPath is a wrapper for Read that opens path, transparently
// decompressing gzip sources.
func ReadFromPath(path string) (contigs []Contig, err error) {
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.Wrapf(err, "fasta: cannot open %s", path)
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
			return nil, errors.Wrapf(err, "fasta: cannot decompress %s", path)
		}
	}
	return Read(reader)
}
