package fasta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

const testFasta = `>contig_1 flye circular=yes
ACGTAC
GAGGAC
GCG
>contig_2
ACGT
`

func TestRead(t *testing.T) {
	contigs, err := Read(strings.NewReader(testFasta))
	assert.NoError(t, err)
	expect.EQ(t, contigs, []Contig{
		{Name: "contig_1", Length: 15},
		{Name: "contig_2", Length: 4},
	})
}

func TestReadEmptyInput(t *testing.T) {
	contigs, err := Read(strings.NewReader(""))
	assert.NoError(t, err)
	expect.EQ(t, len(contigs), 0)
}

func TestReadDuplicateName(t *testing.T) {
	_, err := Read(strings.NewReader(">a\nACGT\n>a\nGG\n"))
	expect.True(t, err != nil)
}

func TestReadDataBeforeHeader(t *testing.T) {
	_, err := Read(strings.NewReader("ACGT\n>a\nGG\n"))
	expect.True(t, err != nil)
}

func TestReadFromPathGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contigs.fasta.gz")
	f, err := os.Create(path)
	assert.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(testFasta))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())
	assert.NoError(t, f.Close())

	contigs, err := ReadFromPath(path)
	assert.NoError(t, err)
	expect.EQ(t, len(contigs), 2)
	expect.EQ(t, contigs[0].Name, "contig_1")
}

func TestReadFromPathMissing(t *testing.T) {
	_, err := ReadFromPath(filepath.Join(t.TempDir(), "nope.fasta"))
	expect.True(t, err != nil)
}
