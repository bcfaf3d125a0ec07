package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(tmplPage))

// tmplPage is the dashboard shell. It is intentionally dumb glue: every
// color, bound, and status class is computed server-side and rendered
// verbatim, so the map and chart widgets are swappable.
const tmplPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Creek Water Quality</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;font-size:14px;color:#1f2328}
header{padding:8px 16px;border-bottom:1px solid #d0d7de;display:flex;gap:16px;align-items:center}
header h1{font-size:16px}
header select{padding:4px 8px}
#map{position:absolute;top:49px;bottom:0;left:0;right:0}
#sidebar{position:absolute;top:49px;right:0;bottom:0;width:340px;background:#fff;border-left:1px solid #d0d7de;padding:16px;overflow-y:auto;display:none;z-index:1000}
#sidebar.open{display:block}
#sidebar .close{float:right;cursor:pointer;border:none;background:none;font-size:18px}
#sidebar h2{font-size:15px;margin-bottom:4px}
#sidebar .meta{color:#656d76;font-size:12px;margin-bottom:12px}
table{width:100%;border-collapse:collapse;margin-bottom:12px}
td,th{padding:4px 6px;border-bottom:1px solid #eee;text-align:left;font-size:12px}
.status-acceptable{color:#1a7f37}
.status-outside-range{color:#cf222e}
.status-no-range{color:#656d76}
.status-no-data{color:#8c959f;font-style:italic}
.checkboxes label{display:block;padding:2px 0;font-size:13px}
#chart{width:100%;height:220px;border:1px solid #eee}
#chart-label{font-size:11px;color:#656d76}
#error-modal{position:fixed;inset:0;background:rgba(0,0,0,.4);display:none;align-items:center;justify-content:center;z-index:2000}
#error-modal.open{display:flex}
#error-modal .box{background:#fff;padding:24px;border-radius:6px;max-width:420px}
#error-modal button{margin-top:12px;padding:6px 12px}
.banner{background:#fff8c5;border:1px solid #d4a72c;padding:4px 8px;font-size:12px;border-radius:4px}
</style>
</head>
<body>
<header>
  <h1>Creek Water Quality</h1>
  <label>Analyte
    <select id="analyte-select"><option value="">(none)</option></select>
  </label>
  <span id="synthetic-banner" class="banner" hidden>demo data</span>
</header>
<div id="map"></div>
<aside id="sidebar"></aside>
<div id="error-modal"><div class="box">
  <strong>Failed to load monitoring data.</strong>
  <p id="error-text"></p>
  <button onclick="document.getElementById('error-modal').classList.remove('open')">Dismiss</button>
</div></div>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
"use strict";
let map, markerLayer = {};

async function api(path, opts) {
  const res = await fetch(path, opts);
  const body = await res.json();
  if (!res.ok) throw new Error(body.error || res.statusText);
  return body;
}

function showError(msg) {
  document.getElementById("error-text").textContent = msg;
  document.getElementById("error-modal").classList.add("open");
}

function drawMarkers(markers) {
  for (const m of markers) {
    let cm = markerLayer[m.code];
    if (!cm) {
      cm = L.circleMarker([m.latitude, m.longitude], {radius: 9, weight: 2, fillOpacity: 0.85});
      cm.on("click", e => { L.DomEvent.stopPropagation(e); openStation(m.code); });
      cm.addTo(map);
      markerLayer[m.code] = cm;
    }
    cm.setStyle({color: m.color, fillColor: m.color});
    cm.bindTooltip(m.name);
  }
}

function drawChart(chart) {
  const canvas = document.getElementById("chart");
  if (!canvas) return;
  const ctx = canvas.getContext("2d");
  canvas.width = canvas.clientWidth; canvas.height = canvas.clientHeight;
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  const span = chart.y_max - chart.y_min || 1;
  const all = chart.series.flatMap(s => s.points.map(p => Date.parse(p.date)));
  if (!all.length) return;
  const t0 = Math.min(...all), t1 = Math.max(...all), tspan = t1 - t0 || 1;
  for (const s of chart.series) {
    ctx.strokeStyle = s.color; ctx.lineWidth = 1.5; ctx.beginPath();
    s.points.forEach((p, i) => {
      const x = (Date.parse(p.date) - t0) / tspan * (canvas.width - 8) + 4;
      const y = canvas.height - ((p.value - chart.y_min) / span) * (canvas.height - 8) - 4;
      i ? ctx.lineTo(x, y) : ctx.moveTo(x, y);
    });
    ctx.stroke();
  }
  document.getElementById("chart-label").textContent =
    chart.y_label + "  [" + chart.y_min.toFixed(2) + " – " + chart.y_max.toFixed(2) + "]";
}

function renderDetail(d) {
  const sb = document.getElementById("sidebar");
  const p = d.panel;
  let html = '<button class="close" onclick="closePanel()">&times;</button>' +
    "<h2>" + p.name + "</h2>" +
    '<div class="meta">' + p.code + " · " + p.latitude.toFixed(5) + ", " + p.longitude.toFixed(5) +
    " · " + p.measurement_count + " measurements</div><table><tr><th>Analyte</th><th>Latest</th></tr>";
  for (const v of p.values) {
    html += '<tr><td>' + v.analyte + '</td><td class="' + v.status_class + '">' +
      (v.has_data ? v.value + (v.unit ? " " + v.unit : "") : "no data") + "</td></tr>";
  }
  html += '</table><div class="checkboxes">';
  for (const c of (p.checkboxes || [])) {
    html += '<label><input type="checkbox" ' + (c.checked ? "checked" : "") +
      ' onchange="toggleAnalyte(\'' + c.analyte + '\')"> ' + c.analyte + "</label>";
  }
  html += '</div><canvas id="chart"></canvas><div id="chart-label"></div>';
  sb.innerHTML = html;
  sb.classList.add("open");
  drawChart(d.chart);
}

async function openStation(code) {
  try { renderDetail(await api("/api/stations/" + encodeURIComponent(code))); }
  catch (err) { showError(err.message); }
}

async function toggleAnalyte(analyte) {
  try { renderDetail(await api("/api/selection/toggle?analyte=" + encodeURIComponent(analyte), {method: "POST"})); }
  catch (err) { showError(err.message); }
}

async function closePanel() {
  document.getElementById("sidebar").classList.remove("open");
  try { await api("/api/panel/close", {method: "POST"}); } catch (err) {}
}

async function selectAnalyte(analyte) {
  try {
    const update = await api("/api/markers?analyte=" + encodeURIComponent(analyte));
    drawMarkers(update.markers);
    if (update.panel) await openStation(update.panel.code);
  } catch (err) { showError(err.message); }
}

async function init() {
  let state;
  try { state = await api("/api/state"); }
  catch (err) { showError(err.message); return; }

  map = L.map("map", {zoomAnimation: false});
  L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png",
    {maxZoom: 19, attribution: "&copy; OpenStreetMap"}).addTo(map);
  map.fitBounds([[state.viewport.min_lat, state.viewport.min_lon],
                 [state.viewport.max_lat, state.viewport.max_lon]],
                {animate: false, maxZoom: state.viewport.zoom});
  map.on("click", closePanel);

  const sel = document.getElementById("analyte-select");
  for (const a of state.analytes) {
    const opt = document.createElement("option");
    opt.value = a; opt.textContent = a;
    if (a === state.active_analyte) opt.selected = true;
    sel.appendChild(opt);
  }
  sel.onchange = () => selectAnalyte(sel.value);

  if (state.synthetic) document.getElementById("synthetic-banner").hidden = false;

  drawMarkers(state.markers);
  document.addEventListener("keydown", e => { if (e.key === "Escape") closePanel(); });
}

init();
</script>
</body>
</html>`
