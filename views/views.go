// Package views embeds the HTML templates rendered by the Fiber views engine.
package views

import "embed"

//go:embed *.html
var FS embed.FS
