package main

/*
coverage-viewer turns per-base BED coverage for many samples against an
assembly into a self-contained interactive HTML viewer, plus optional
sample-contribution and chimera-screening reports.
*/

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/megjohnson1999/contig-coverage-viewer/chimera"
	"github.com/megjohnson1999/contig-coverage-viewer/config"
	"github.com/megjohnson1999/contig-coverage-viewer/coverage"
	"github.com/megjohnson1999/contig-coverage-viewer/fasta"
	"github.com/megjohnson1999/contig-coverage-viewer/render"
	"github.com/megjohnson1999/contig-coverage-viewer/summary"
)

var (
	configPath  = flag.String("config", "config.yaml", "Configuration file path; missing file means built-in defaults")
	fastaPath   = flag.String("fasta", "", "Assembly FASTA path (overrides config)")
	coverageDir = flag.String("coverage-dir", "", "Directory of per-base BED coverage files (overrides config)")
	outPath     = flag.String("out", "", "Output HTML path (overrides config); the artifact JSON is written alongside it")
	title       = flag.String("title", "", "Viewer page title (overrides config)")
	dataset     = flag.String("dataset", "", "Dataset name for display (overrides config)")
	minMean     = flag.Float64("min-mean", coverage.DefaultOpts.MinMeanCoverage, "Minimum mean coverage for a (contig, sample) pair to be retained; 0 with -min-max 0 disables filtering")
	minMax      = flag.Float64("min-max", coverage.DefaultOpts.MinMaxCoverage, "Minimum maximum coverage for a (contig, sample) pair to be retained")
	maxBins     = flag.Int("max-bins", coverage.DefaultOpts.MaxBins, "Maximum display bins per contig")
	maxSamples  = flag.Int("max-samples", coverage.DefaultOpts.MaxSamples, "Keep only the top N retained samples per contig by mean coverage; 0 = no cap")
	parallelism = flag.Int("parallelism", 0, "Number of contigs processed concurrently; 0 = runtime.NumCPU()")
	summaryPath = flag.String("summary", "", "Also write a sample-contribution CSV to this path")
	chimeraPath = flag.String("chimera", "", "Also write a chimera-screening report to this path")
	serveAddr   = flag.String("serve", "", "After writing outputs, serve the viewer on this address (e.g. localhost:8080)")
)

func coverageViewerUsage() {
	fmt.Printf("Usage: %s [OPTIONS]\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = coverageViewerUsage
	shutdown := grail.Init()
	defer shutdown()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	applyFlagOverrides(cfg)

	contigs, err := fasta.ReadFromPath(cfg.FastaPath)
	if err != nil {
		log.Fatalf("reading assembly: %v", err)
	}
	log.Printf("found %d contig(s) in %s", len(contigs), cfg.FastaPath)

	sources, err := listCoverageSources(cfg.CoverageDir)
	if err != nil {
		log.Fatalf("listing coverage sources: %v", err)
	}
	if len(sources) == 0 {
		log.Fatalf("no coverage files found in %s", cfg.CoverageDir)
	}

	metas := make([]coverage.ContigMeta, len(contigs))
	for i, c := range contigs {
		metas[i] = coverage.ContigMeta{Name: c.Name, Length: c.Length}
	}
	art, err := coverage.Run(metas, sources, cfg.Opts())
	if err != nil {
		log.Fatalf("%v", err)
	}

	page := render.Page{Title: cfg.Title, Dataset: cfg.DatasetName}
	if err := writeArtifact(artifactPath(cfg.OutputPath), art); err != nil {
		log.Fatalf("%v", err)
	}
	if err := writeViewer(cfg.OutputPath, art, page); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("wrote %s", cfg.OutputPath)

	if *summaryPath != "" {
		if err := writeSummary(*summaryPath, art); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("wrote %s", *summaryPath)
	}
	if *chimeraPath != "" {
		if err := writeChimeraReport(*chimeraPath, art); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("wrote %s", *chimeraPath)
	}
	if *serveAddr != "" {
		if err := render.Serve(*serveAddr, art, page); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

// applyFlagOverrides copies explicitly set flags over the file-resolved
// configuration, so precedence is flags > config file > defaults.
func applyFlagOverrides(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fasta":
			cfg.FastaPath = *fastaPath
		case "coverage-dir":
			cfg.CoverageDir = *coverageDir
		case "out":
			cfg.OutputPath = *outPath
		case "title":
			cfg.Title = *title
		case "dataset":
			cfg.DatasetName = *dataset
		case "min-mean":
			cfg.MinMeanCoverage = *minMean
		case "min-max":
			cfg.MinMaxCoverage = *minMax
		case "max-bins":
			cfg.MaxBins = *maxBins
		case "max-samples":
			cfg.MaxSamples = *maxSamples
		case "parallelism":
			cfg.Parallelism = *parallelism
		}
	})
}

// listCoverageSources returns the recognized coverage files under dir in
// sorted order, so same-sample sources merge in a stable order.
func listCoverageSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if coverage.IsCoverageFile(entry.Name()) {
			sources = append(sources, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(sources)
	return sources, nil
}

// artifactPath derives the artifact JSON path from the HTML output path.
func artifactPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".json"
}

func writeArtifact(path string, art *coverage.Artifact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return art.EncodeJSON(f)
}

func writeViewer(path string, art *coverage.Artifact, page render.Page) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return render.Write(f, art, page)
}

func writeSummary(path string, art *coverage.Artifact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return summary.WriteCSV(f, summary.Build(art, summary.DefaultMinMean))
}

func writeChimeraReport(path string, art *coverage.Artifact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	candidates := chimera.Screen(art, chimera.DefaultOpts)
	if _, err := fmt.Fprintln(f, "contig\tscore\tleaders"); err != nil {
		return err
	}
	for _, c := range candidates {
		if _, err := fmt.Fprintf(f, "%s\t%.2f\t%d\n", c.Contig, c.Score, c.Leaders); err != nil {
			return err
		}
	}
	log.Printf("chimera screen: %d candidate contig(s)", len(candidates))
	return nil
}
