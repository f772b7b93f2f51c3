// Package render turns widget state into an HTML page driven by Leaflet.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/woozymasta/pinmap/assets"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

// Leaflet release loaded by the page.
const (
	DefaultLeafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	DefaultLeafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
	DefaultTitle      = "Map"
)

var jsType = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)

// Options configures a Renderer.
type Options struct {
	Title      string
	LeafletCSS string
	LeafletJS  string
	Minify     bool
}

// PageData is the template input.
type PageData struct {
	Title      string
	LeafletCSS string
	LeafletJS  string
	CSS        template.CSS
	JS         template.JS
	State      State
	Records    []RecordState
}

// Renderer executes the page template. It is safe for concurrent use.
type Renderer struct {
	tmpl    *template.Template
	m       *minify.M
	opts    Options
	css     template.CSS
	js      template.JS
	favicon []byte
}

// New parses the embedded template and, with Minify set, minifies the
// static stylesheet, script and icon once.
func New(opts Options) (*Renderer, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.LeafletCSS == "" {
		opts.LeafletCSS = DefaultLeafletCSS
	}
	if opts.LeafletJS == "" {
		opts.LeafletJS = DefaultLeafletJS
	}

	tmpl, err := template.New("index").Parse(assets.IndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(jsType, js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	r := &Renderer{
		tmpl:    tmpl,
		m:       m,
		opts:    opts,
		css:     template.CSS(assets.Style),
		js:      template.JS(assets.Script),
		favicon: assets.Favicon,
	}

	if !opts.Minify {
		return r, nil
	}

	cssMin, err := m.String("text/css", assets.Style)
	if err != nil {
		return nil, fmt.Errorf("minify CSS: %w", err)
	}
	jsMin, err := m.String("text/javascript", assets.Script)
	if err != nil {
		return nil, fmt.Errorf("minify JS: %w", err)
	}
	svgMin, err := m.Bytes("image/svg+xml", assets.Favicon)
	if err != nil {
		return nil, fmt.Errorf("minify SVG: %w", err)
	}

	r.css = template.CSS(cssMin)
	r.js = template.JS(jsMin)
	r.favicon = svgMin

	return r, nil
}

// Page renders the full HTML page for the widget.
func (r *Renderer) Page(w *widget.Widget) ([]byte, error) {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, PageData{
		Title:      r.opts.Title,
		LeafletCSS: r.opts.LeafletCSS,
		LeafletJS:  r.opts.LeafletJS,
		CSS:        r.css,
		JS:         r.js,
		State:      NewState(w),
		Records:    NewRecords(w),
	})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	if !r.opts.Minify {
		return buf.Bytes(), nil
	}

	out, err := r.m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify HTML: %w", err)
	}
	return out, nil
}

// Favicon returns the site icon, minified when the renderer minifies.
func (r *Renderer) Favicon() []byte {
	return r.favicon
}
