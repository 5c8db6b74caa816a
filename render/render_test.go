package render

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"

	"github.com/megjohnson1999/contig-coverage-viewer/coverage"
)

func testArtifact() *coverage.Artifact {
	return &coverage.Artifact{
		Contigs: map[string]map[string]*coverage.Track{
			"k1": {
				"s1": {
					Bins:  []coverage.Bin{{Start: 0, End: 119, Value: 1.5}},
					Stats: coverage.SeriesStats{Mean: 1.5, Median: 1.5, Max: 2},
				},
			},
		},
		AllContigs: []string{"k1", "k2"},
		AllSamples: []string{"s1"},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	page := DefaultPage
	page.Title = "My Coverage Run"
	assert.NoError(t, Write(&buf, testArtifact(), page))
	html := buf.String()
	expect.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	expect.HasSubstr(t, html, "<title>My Coverage Run</title>")
	// The artifact is embedded verbatim for the page's script.
	expect.HasSubstr(t, html, `"allSequenceIds":["k1","k2"]`)
	expect.HasSubstr(t, html, `"stats":{"mean":1.5,"median":1.5,"max":2}`)
}

func TestHandlerServesPageAndArtifact(t *testing.T) {
	srv := httptest.NewServer(NewHandler(testArtifact(), DefaultPage))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	assert.NoError(t, err)
	expect.EQ(t, resp.StatusCode, http.StatusOK)
	expect.HasSubstr(t, resp.Header.Get("Content-Type"), "text/html")
	assert.NoError(t, resp.Body.Close())

	resp, err = http.Get(srv.URL + "/artifact.json")
	assert.NoError(t, err)
	expect.EQ(t, resp.StatusCode, http.StatusOK)
	decoded, err := coverage.DecodeArtifact(resp.Body)
	assert.NoError(t, err)
	assert.NoError(t, resp.Body.Close())
	expect.EQ(t, decoded.AllContigs, []string{"k1", "k2"})
}
