package web

const css = `body {
  font-family: sans-serif;
  color: #333;
}

h1 {
  text-align: center;
}

.container {
  display: flex;
  margin: auto;
  max-width: 1000px;
}

.sidebar {
  width: 200px;
  max-height: 535px;
  overflow-y: auto;
  font-size: 14px;
}

.sidebar label {
  display: block;
  cursor: pointer;
}

.sidebar .bold {
  font-weight: bold;
}

.wrapper {
  position: relative;
}

.tick text {
  font-size: 12px;
  fill: #333;
}

.tick line {
  stroke: #eee;
}

.tooltip {
  position: absolute;
  top: 20px;
  display: none;
  padding: 6px 10px;
  background: rgba(255, 255, 255, 0.9);
  border: 1px solid #d2d3d4;
  font-size: 13px;
  pointer-events: none;
}

.tooltip .header {
  font-weight: bold;
  margin-bottom: 4px;
}

.error {
  color: #b00;
}

.legend {
  font-size: 12px;
}`

const indexTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <title>COVID-19</title>
  <link rel="stylesheet" href="/style.css">
</head>
<body>

  <h1>COVID-19</h1>

  <ul>
  {{- range .Entries}}
    <li>
      <a href="/charts/{{.Keyword}}">{{.Title}}</a>
      {{- if not .Ready}} <span class="error">({{.Err}})</span>{{end}}
    </li>
  {{- end}}
    <li><a href="/map">{{.MapTitle}}</a></li>
  </ul>

</body>
</html>`

const chartTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/style.css">
</head>
<body>

  <h1>{{.Title}}</h1>
  {{- if .Stale}}
  <p class="error">{{if .Updated}}Last updated {{.Updated}}: {{end}}{{.Stale}}</p>
  {{- end}}

  <div class="container">

    <form class="sidebar" method="get" action="/charts/{{.Keyword}}">
      <input type="hidden" name="active" value="">
      {{- range .Labels}}
      <label style="color: {{.Color}}"{{if .Bold}} class="bold"{{end}}>
        <input type="checkbox" name="active" value="{{.Code}}"{{if .Checked}} checked{{end}} onchange="this.form.submit()">
        {{.Name}}
      </label>
      {{- end}}
      <noscript><button type="submit">OK</button></noscript>
    </form>

    <div class="wrapper" id="wrapper-{{.Keyword}}">
      <svg width="{{.Scene.Dimensions.Width}}" height="{{.Scene.Dimensions.Height}}">
        <g transform="translate({{.Scene.Dimensions.Margin.Left}},{{.Scene.Dimensions.Margin.Top}})">

          <g class="y-axis">
          {{- range .Scene.YTicks}}
            <g class="tick" transform="translate(0,{{.Pos}})">
              <line x2="{{$.BoundedWidth}}"></line>
              <text x="{{$.BoundedWidth}}" dx="4" dy="4">{{.Label}}</text>
            </g>
          {{- end}}
          </g>

          <g class="x-axis" transform="translate(0,{{.BoundedHeight}})">
          {{- range .Scene.XTicks}}
            <g class="tick" transform="translate({{.Pos}},0)">
              <text y="20" text-anchor="middle">{{.Label}}</text>
            </g>
          {{- end}}
          </g>

          <g class="plot" id="plot-{{.Keyword}}">
            <rect id="listening-{{.Keyword}}" width="{{.BoundedWidth}}" height="{{.BoundedHeight}}" fill="transparent"></rect>

            <g class="lines">
            {{- range .Grey}}
              <a href="{{.ToggleURL}}">
                <path d="{{.D}}" fill="none" stroke="{{.Stroke}}" stroke-width="{{.Width}}"><title>{{.Name}}</title></path>
              </a>
            {{- end}}
            {{- with .Scene.Reference}}
              <path d="{{.D}}" fill="none" stroke="{{.Stroke}}" stroke-width="{{.Width}}" stroke-dasharray="{{.Dash}}" pointer-events="none"></path>
            {{- end}}
            {{- range .Active}}
              <a href="{{.ToggleURL}}">
                <path d="{{.D}}" fill="none" stroke="{{.Stroke}}" stroke-width="{{.Width}}"><title>{{.Name}}</title></path>
              </a>
            {{- end}}
            {{- with .Scene.Baseline}}
              <line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="{{.Stroke}}" stroke-width="{{.Width}}" pointer-events="none"></line>
            {{- end}}
            </g>

            <line id="guide-{{.Keyword}}" x1="0" x2="0" y1="{{.Scene.Guide.Y1}}" y2="{{.Scene.Guide.Y2}}" stroke="{{.Scene.Guide.Stroke}}" stroke-width="{{.Scene.Guide.Width}}" stroke-dasharray="{{.Scene.Guide.Dash}}" visibility="hidden" pointer-events="none"></line>
            <g id="markers-{{.Keyword}}" pointer-events="none"></g>
          </g>
        </g>
      </svg>
      <div class="tooltip" id="tooltip-{{.Keyword}}" style="left: {{.TooltipLeft}}px"></div>
    </div>

  </div>

  <p>
    <a href="{{.PNGURL}}">PNG</a> |
    <a href="{{.InteractiveURL}}">ECharts</a> |
    <a href="/">Index</a>
  </p>

<script>
(function() {
  const keyword = {{.Keyword}};
  const tooltipURL = {{.TooltipURL}};
  const boundedWidth = {{.BoundedWidth}};

  const plot = document.getElementById("plot-" + keyword);
  const listening = document.getElementById("listening-" + keyword);
  const guide = document.getElementById("guide-" + keyword);
  const markers = document.getElementById("markers-" + keyword);
  const box = document.getElementById("tooltip-" + keyword);
  const ns = "http://www.w3.org/2000/svg";

  function hide() {
    guide.setAttribute("visibility", "hidden");
    markers.replaceChildren();
    box.style.display = "none";
  }

  function show(t) {
    guide.setAttribute("x1", t.x);
    guide.setAttribute("x2", t.x);
    guide.setAttribute("visibility", "visible");

    markers.replaceChildren();
    for (const m of t.markers || []) {
      const c = document.createElementNS(ns, "circle");
      c.setAttribute("cx", m.x);
      c.setAttribute("cy", m.y);
      c.setAttribute("r", m.r);
      c.setAttribute("fill", m.color);
      markers.appendChild(c);
    }

    box.replaceChildren();
    const header = document.createElement("div");
    header.className = "header";
    header.textContent = t.header;
    box.appendChild(header);
    for (const r of t.rows || []) {
      const row = document.createElement("div");
      row.style.color = r.color;
      row.textContent = r.name + ": " + r.value;
      box.appendChild(row);
    }
    box.style.display = "block";
  }

  let pending = 0;

  plot.addEventListener("mousemove", function(event) {
    const rect = listening.getBoundingClientRect();
    const x = (event.clientX - rect.left) * boundedWidth / rect.width;
    const id = ++pending;

    fetch(tooltipURL + "&x=" + x.toFixed(2))
      .then(function(response) { return response.json(); })
      .then(function(t) {
        if (id !== pending) {
          return;
        }
        if (t.visible) {
          show(t);
        } else {
          hide();
        }
      });
  });

  plot.addEventListener("mouseleave", function() {
    pending++;
    hide();
  });
})();
</script>

</body>
</html>`

const mapTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/style.css">
</head>
<body>

  <h1>{{.Title}}</h1>
  <p class="legend">{{.Date}}: {{.Low}} to {{.High}} per 100,000</p>

  <svg width="{{.Map.Dimensions.Width}}" height="{{.Map.Dimensions.Height}}">
    <g transform="translate({{.Map.Dimensions.Margin.Left}},{{.Map.Dimensions.Margin.Top}})">
    {{- range .Map.Countries}}
      <path d="{{.D}}" fill="{{.Fill}}" stroke="#fff" stroke-width="0.5">
        <title>{{.Name}}{{if .HasRate}}: {{printf "%.1f" .Rate}}{{end}}</title>
      </path>
    {{- end}}
    </g>
  </svg>

  <p><a href="/">Index</a></p>

</body>
</html>`

const unavailableTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/style.css">
</head>
<body>

  <h1>{{.Title}}</h1>
  <p class="error">There are no data available: {{.Err}}</p>

</body>
</html>`
