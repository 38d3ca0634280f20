package page

const tmplBase = `{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 0; background: #0d1117; color: #c9d1d9; }
header { padding: 24px 32px; border-bottom: 1px solid #30363d; }
header h1 { margin: 0 0 4px; font-size: 24px; }
header .meta { color: #8b949e; font-size: 13px; }
main { padding: 24px 32px; }
.cards { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 24px; }
.card { background: #161b22; border: 1px solid #30363d; border-radius: 6px; padding: 12px 20px; min-width: 120px; }
.card .n { font-size: 28px; font-weight: 600; }
.card .l { font-size: 12px; color: #8b949e; text-transform: uppercase; }
.panels { display: grid; grid-template-columns: repeat(auto-fit, minmax(480px, 1fr)); gap: 24px; }
.panel { background: #161b22; border: 1px solid #30363d; border-radius: 6px; min-height: 420px; }
.notice { margin: 64px auto; max-width: 560px; text-align: center; background: #161b22; border: 1px solid #30363d; border-radius: 6px; padding: 32px; }
select { background: #161b22; color: #c9d1d9; border: 1px solid #30363d; padding: 4px 8px; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
{{template "meta" .}}
</header>
<main>
{{template "content" .}}
</main>
</body>
</html>{{end}}`

const tmplPage = `{{define "meta"}}<div class="meta">Catalog updated {{.Updated}} · {{fmtCount .EventCount}} events · {{fmtCount .UniqueEvents}} unique detections</div>{{end}}
{{define "content"}}
<label for="version">Catalog version</label>
<select id="version">
{{range .Views}}<option value="{{.Key}}">{{.Label}}</option>
{{end}}</select>
{{with index .Views 0}}
<div class="cards" id="stats">
<div class="card"><div class="n" data-stat="total">{{fmtCount .Stats.Total}}</div><div class="l">Total</div></div>
<div class="card" style="border-color: {{typeColor "BBH"}}"><div class="n" data-stat="bbh">{{fmtCount .Stats.BBH}}</div><div class="l">BBH</div></div>
<div class="card" style="border-color: {{typeColor "NSBH"}}"><div class="n" data-stat="nsbh">{{fmtCount .Stats.NSBH}}</div><div class="l">NSBH</div></div>
<div class="card" style="border-color: {{typeColor "BNS"}}"><div class="n" data-stat="bns">{{fmtCount .Stats.BNS}}</div><div class="l">BNS</div></div>
</div>
<div class="panels">
{{range .Panels}}<div class="panel" id="panel-{{.ID}}"></div>
{{end}}</div>
{{end}}
<script src="{{.ChartLibURL}}"></script>
<script>
const VIEWS = {{.Views}};
function traces(panel) {
  return (panel.series || []).map(function (s) {
    const t = { name: s.name, text: s.text, hoverinfo: "text", marker: { color: s.color } };
    if (s.kind === "histogram") { t.type = "histogram"; t.x = s.x; t.opacity = 0.75; return t; }
    if (s.kind === "line") { t.type = "scatter"; t.mode = "lines+markers"; t.x = s.x_labels; t.y = s.y; return t; }
    t.type = "scatter"; t.mode = "markers"; t.x = s.x; t.y = s.y; t.marker.size = s.size;
    return t;
  });
}
function show(key) {
  const v = VIEWS.find(function (v) { return v.key === key; }) || VIEWS[0];
  ["total", "bbh", "nsbh", "bns"].forEach(function (k) {
    document.querySelector('[data-stat="' + k + '"]').textContent = v.stats[k];
  });
  v.panels.forEach(function (p) {
    Plotly.react("panel-" + p.id, traces(p), {
      title: p.title, barmode: "overlay",
      xaxis: { title: p.x_title }, yaxis: { title: p.y_title },
      paper_bgcolor: "#161b22", plot_bgcolor: "#161b22", font: { color: "#c9d1d9" }
    });
  });
}
document.getElementById("version").addEventListener("change", function (e) { show(e.target.value); });
show("all");
</script>
{{end}}`

const tmplFailure = `{{define "meta"}}{{end}}
{{define "content"}}<div class="notice">
<h2>Event data unavailable</h2>
<p>The gravitational-wave event catalog could not be loaded. Please try again later.</p>
</div>{{end}}`
