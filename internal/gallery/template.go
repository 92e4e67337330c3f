package gallery

// galleryTemplate is the single-page contact sheet. It inlines its styles so
// the output directory stays self-contained.
const galleryTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #0b0d10;
    --bg-elev: #0f1318;
    --accent: #00e5ff;
    --accent-2: #ff2bd6;
    --fg: #e7f7ff;
    --muted: #94a3b8;
    --border: #1e293b;
  }
  body {
    margin: 0;
    padding: 2rem;
    background: var(--bg);
    color: var(--fg);
    font-family: ui-monospace, "SF Mono", Menlo, Consolas, monospace;
  }
  h1 { color: var(--accent); font-size: 1.4rem; }
  h2 { color: var(--accent-2); font-size: 1rem; margin-top: 2.5rem; border-bottom: 1px solid var(--border); padding-bottom: .5rem; }
  .meta { color: var(--muted); font-size: .8rem; }
  .intro { max-width: 60ch; color: var(--fg); }
  .intro a { color: var(--accent); }
  .swatches { display: flex; gap: .5rem; margin: 1rem 0; flex-wrap: wrap; }
  .swatch { width: 7rem; border: 1px solid var(--border); border-radius: 4px; overflow: hidden; font-size: .7rem; }
  .swatch-color { height: 2.5rem; }
  .swatch-label { padding: .3rem .4rem; background: var(--bg-elev); color: var(--muted); }
  .sheet { display: flex; flex-wrap: wrap; gap: 1rem; }
  figure { margin: 0; background: var(--bg-elev); border: 1px solid var(--border); border-radius: 6px; padding: .6rem; }
  figure img { display: block; max-width: 280px; height: auto; }
  figcaption { margin-top: .5rem; font-size: .7rem; color: var(--muted); }
  figcaption strong { color: var(--fg); font-weight: 600; }
  .anim { color: var(--accent); }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">palette: {{.PaletteName}} · generated {{.GeneratedAt}}</p>
{{if .Intro}}<div class="intro">{{.Intro}}</div>{{end}}
<div class="swatches">
{{range .Swatches}}  <div class="swatch"><div class="swatch-color" style="background: {{.Hex}}"></div><div class="swatch-label">{{.Name}} {{.Hex}}</div></div>
{{end}}</div>
{{range .Groups}}
<h2>{{.Label}}</h2>
<div class="sheet">
{{range .Assets}}  <figure>
    <img src="{{.Src}}" alt="{{.Name}}" loading="lazy">
    <figcaption>
      <strong>{{.Style}}{{if .Variant}} / {{.Variant}}{{end}}</strong><br>
      {{.Src}}{{if .Animated}}<br><a class="anim" href="{{.Animated}}">{{.Animated}}</a>{{end}}{{range .Variants}}<br>{{.}}{{end}}
    </figcaption>
  </figure>
{{end}}</div>
{{end}}
</body>
</html>
`
