package site

// pageTemplate is the Go html/template for the deck landing page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <div class="progress" aria-hidden="true"><div class="progress-fill" id="progress-fill"></div></div>
  <nav class="rail" id="rail">
    <a href="#top" class="rail-title">{{.Title}}</a>
    <input type="text" id="search-input" placeholder="Filter sections..." autocomplete="off">
    <ol class="rail-items">
      {{range .Sections}}<li><a href="#{{.ID}}" data-section="{{.ID}}"><span class="rail-num">{{.Number}}</span> {{.Label}}</a></li>
      {{end}}
    </ol>
    {{if .Version}}<div class="rail-version">{{.Version}}</div>{{end}}
  </nav>
  <main class="deck" id="top">
    {{range .Sections}}<section id="{{.ID}}" class="slide" data-ordinal="{{.Ordinal}}">
      {{.Content}}
    </section>
    {{end}}
  </main>
  <script src="script.js"></script>
  {{if .LiveReload}}<script src="livereload.js"></script>{{end}}
</body>
</html>`

// cssContent is the stylesheet for the landing page.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-rail: #f1f3f5;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #1a1aff;
  --highlight: #d9480f;
  --code-bg: #f1f3f5;
  --rail-width: 220px;
  --content-max-width: 900px;
}

@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1b26;
    --bg-rail: #16171f;
    --text: #c0caf5;
    --text-muted: #565f89;
    --border: #292e42;
    --accent: #7d7dff;
    --highlight: #ffb347;
    --code-bg: #1f2030;
  }
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  font-size: 16px;
  scroll-behavior: smooth;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

/* ============ Progress ============ */
.progress {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  height: 4px;
  z-index: 10;
}

.progress-fill {
  height: 100%;
  width: 0;
  background: var(--highlight);
}

/* ============ Rail ============ */
.rail {
  position: fixed;
  top: 4px;
  bottom: 0;
  left: 0;
  width: var(--rail-width);
  padding: 1.5rem 1rem;
  background: var(--bg-rail);
  border-right: 1px solid var(--border);
  overflow-y: auto;
}

.rail-title {
  display: block;
  font-weight: 700;
  color: var(--accent);
  text-decoration: none;
  margin-bottom: 1rem;
}

#search-input {
  width: 100%;
  padding: 0.35rem 0.5rem;
  margin-bottom: 1rem;
  border: 1px solid var(--border);
  border-radius: 4px;
  background: var(--bg);
  color: var(--text);
}

.rail-items {
  list-style: none;
}

.rail-items a {
  display: block;
  padding: 0.25rem 0.5rem;
  border-radius: 4px;
  color: var(--text-muted);
  text-decoration: none;
}

.rail-items a.active {
  color: var(--bg);
  background: var(--accent);
}

.rail-items li.hidden {
  display: none;
}

.rail-num {
  display: inline-block;
  width: 1.5rem;
}

.rail-version {
  margin-top: 1.5rem;
  font-size: 0.8rem;
  color: var(--text-muted);
}

/* ============ Sections ============ */
.deck {
  margin-left: var(--rail-width);
  padding: 2rem 3rem;
}

.slide {
  max-width: var(--content-max-width);
  min-height: 60vh;
  padding: 2rem 0;
  border-bottom: 1px solid var(--border);
}

.slide h1 {
  font-size: 2rem;
  color: var(--accent);
  margin-bottom: 1rem;
}

.slide h2 {
  font-size: 1.4rem;
  margin: 1.5rem 0 0.5rem;
}

.slide p, .slide ul, .slide ol, .slide table, .slide blockquote, .slide pre {
  margin-bottom: 1rem;
}

.slide ul, .slide ol {
  padding-left: 1.5rem;
}

.slide code {
  background: var(--code-bg);
  padding: 0.1rem 0.3rem;
  border-radius: 3px;
}

.slide pre {
  padding: 1rem;
  border-radius: 6px;
  overflow-x: auto;
}

.slide pre code {
  background: none;
  padding: 0;
}

.slide blockquote {
  border-left: 3px solid var(--border);
  padding-left: 1rem;
  color: var(--text-muted);
}

.slide table {
  border-collapse: collapse;
}

.slide th, .slide td {
  border: 1px solid var(--border);
  padding: 0.4rem 0.8rem;
}

@media (max-width: 768px) {
  .rail {
    display: none;
  }
  .deck {
    margin-left: 0;
    padding: 1rem;
  }
}
`

// jsContent highlights the rail entry of the section at the top of the
// viewport, fills the progress bar and filters the rail from the search index.
const jsContent = `(function() {
  var threshold = 100;
  var links = document.querySelectorAll(".rail-items a");
  var sections = document.querySelectorAll("section.slide");
  var fill = document.getElementById("progress-fill");
  var pending = false;

  function update() {
    pending = false;
    var current = 0;
    for (var i = sections.length - 1; i >= 0; i--) {
      if (sections[i].getBoundingClientRect().top <= threshold) {
        current = i;
        break;
      }
    }
    links.forEach(function(a, i) { a.classList.toggle("active", i === current); });

    var max = document.documentElement.scrollHeight - window.innerHeight;
    var fraction = max > 0 ? window.scrollY / max : 1;
    if (fill) fill.style.width = (fraction * 100) + "%";
  }

  window.addEventListener("scroll", function() {
    if (!pending) {
      pending = true;
      window.requestAnimationFrame(update);
    }
  }, { passive: true });
  update();

  // ===== Rail filter (with search-index.json) =====
  var input = document.getElementById("search-input");
  var index = null;
  fetch("search-index.json")
    .then(function(r) { return r.json(); })
    .then(function(data) { index = data; })
    .catch(function() { index = null; });

  if (input) {
    input.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      links.forEach(function(a) {
        var id = a.getAttribute("data-section");
        var text = a.textContent.toLowerCase();
        if (index) {
          index.forEach(function(e) {
            if (e.id === id) text += " " + e.content.toLowerCase();
          });
        }
        a.parentElement.classList.toggle("hidden", query !== "" && text.indexOf(query) === -1);
      });
    });
  }
})();
`

// liveReloadJS reconnects to the dev server and reloads on "reload".
const liveReloadJS = `(function() {
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/livereload");
    ws.onmessage = function(ev) {
      if (ev.data === "reload") location.reload();
    };
    ws.onclose = function() { setTimeout(connect, 1000); };
  }
  connect();
})();
`
