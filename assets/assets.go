// Package assets embeds the page template and client files.
package assets

import _ "embed"

// IndexTemplate is the html/template source of the map page.
//
//go:embed index.html.tpl
var IndexTemplate string

// Script is the client glue between the rendered state and Leaflet.
//
//go:embed script.js
var Script string

// Style is the page stylesheet.
//
//go:embed style.css
var Style string

// Favicon is the site icon.
//
//go:embed favicon.svg
var Favicon []byte
