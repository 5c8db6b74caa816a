// Package render turns a coverage artifact into a self-contained
// interactive HTML page.  All data is embedded as JSON; the page needs
// nothing but a browser and the d3 CDN.
package render

import (
	"bytes"
	"html/template"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/megjohnson1999/contig-coverage-viewer/coverage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Page describes one rendered viewer page.
type Page struct {
	Title   string
	Dataset string
}

// DefaultPage sets the default values for Page.
var DefaultPage = Page{
	Title:   "Interactive Contig Coverage Viewer",
	Dataset: "Contig Coverage Analysis",
}

type pageData struct {
	Title      string
	Dataset    string
	NumContigs int
	NumSamples int
	Artifact   template.JS
}

// Write renders the viewer page for art to w.
func Write(w io.Writer, art *coverage.Artifact, page Page) error {
	raw, err := json.Marshal(art)
	if err != nil {
		return errors.Wrap(err, "render: marshaling artifact")
	}
	data := pageData{
		Title:      page.Title,
		Dataset:    page.Dataset,
		NumContigs: len(art.AllContigs),
		NumSamples: len(art.AllSamples),
		Artifact:   template.JS(raw),
	}
	var buf bytes.Buffer
	if err := viewerTemplate.Execute(&buf, data); err != nil {
		return errors.Wrap(err, "render: executing template")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "render: writing page")
	}
	return nil
}

var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<script src="https://d3js.org/d3.v7.min.js"></script>
<style>
body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
.container { max-width: 1400px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px; }
h1 { text-align: center; color: #333; }
.info { margin: 10px 0; padding: 10px; background-color: #e9ecef; border-radius: 4px; font-size: 14px; }
select { padding: 8px; border: 1px solid #ddd; border-radius: 4px; min-width: 200px; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 10px; margin: 10px 0; }
.stat-item { background-color: #e9ecef; padding: 8px; border-radius: 4px; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<div class="info"><strong>Dataset:</strong> {{.Dataset}} |
<strong>Contigs:</strong> {{.NumContigs}} | <strong>Samples:</strong> {{.NumSamples}}</div>
<div><label for="contigSelect">Select Contig:</label>
<select id="contigSelect"><option value="">Choose a contig...</option></select></div>
<div id="contigInfo" class="info" style="display:none"></div>
<div id="stats" class="stats" style="display:none"></div>
<div id="chart"></div>
</div>
<script>
const artifact = {{.Artifact}};
const margin = {top: 20, right: 100, bottom: 60, left: 80};
const width = 1200 - margin.left - margin.right;

document.addEventListener('DOMContentLoaded', () => {
  const select = document.getElementById('contigSelect');
  artifact.allSequenceIds.forEach(contig => {
    const option = document.createElement('option');
    option.value = contig;
    option.textContent = contig;
    select.appendChild(option);
  });
  select.addEventListener('change', updateChart);
});

function contigLength(tracks) {
  const first = Object.values(tracks)[0];
  return first.bins[first.bins.length - 1].end;
}

function updateChart() {
  const contig = document.getElementById('contigSelect').value;
  const tracks = artifact.sequences[contig];
  d3.select('#chart').selectAll('*').remove();
  if (!contig || !tracks) {
    document.getElementById('contigInfo').style.display = 'none';
    document.getElementById('stats').style.display = 'none';
    return;
  }
  const samples = Object.keys(tracks).sort();
  const length = contigLength(tracks);

  const info = document.getElementById('contigInfo');
  info.innerHTML = '<strong>Contig:</strong> ' + contig +
    ' | <strong>Length:</strong> ' + length.toLocaleString() + ' bp' +
    ' | <strong>Samples:</strong> ' + samples.length;
  info.style.display = 'block';

  const statsDiv = document.getElementById('stats');
  statsDiv.innerHTML = '';
  samples.forEach(sample => {
    const s = tracks[sample].stats;
    const item = document.createElement('div');
    item.className = 'stat-item';
    item.innerHTML = '<strong>' + sample + '</strong><br>Mean: ' + s.mean.toFixed(2) +
      ' | Median: ' + s.median.toFixed(2) + ' | Max: ' + s.max.toFixed(2);
    statsDiv.appendChild(item);
  });
  statsDiv.style.display = 'grid';

  drawHeatMap(tracks, samples, length);
}

function drawHeatMap(tracks, samples, length) {
  const maxCoverage = Math.max(...samples.map(s => tracks[s].stats.max));
  const colorScale = d3.scaleSequential(d3.interpolateBlues)
    .domain([0, Math.log10(maxCoverage + 1)]);
  const rowHeight = 30;
  const svg = d3.select('#chart').append('svg')
    .attr('width', width + margin.left + margin.right)
    .attr('height', samples.length * rowHeight + 80);
  const g = svg.append('g').attr('transform', 'translate(' + margin.left + ',20)');
  const xScale = d3.scaleLinear().domain([0, length]).range([0, width]);
  const yScale = d3.scaleBand().domain(samples).range([0, samples.length * rowHeight]).padding(0.1);

  samples.forEach(sample => {
    tracks[sample].bins.forEach(bin => {
      g.append('rect')
        .attr('x', xScale(bin.start))
        .attr('y', yScale(sample))
        .attr('width', Math.max(1, xScale(bin.end) - xScale(bin.start)))
        .attr('height', yScale.bandwidth())
        .attr('fill', bin.value > 0 ? colorScale(Math.log10(bin.value + 1)) : '#f0f0f0');
    });
  });

  g.append('g')
    .attr('transform', 'translate(0,' + samples.length * rowHeight + ')')
    .call(d3.axisBottom(xScale).tickFormat(d => d.toLocaleString()));
  g.append('g').call(d3.axisLeft(yScale));
  g.append('text')
    .attr('transform', 'translate(' + width / 2 + ',' + (samples.length * rowHeight + 40) + ')')
    .style('text-anchor', 'middle').style('font-size', '12px')
    .text('Position (bp)');
}
</script>
</body>
</html>
`))
