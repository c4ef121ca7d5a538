// Package static embeds the festival stylesheet and script served under
// /static/.
package static

import "embed"

// FS holds festival.css and festival.js.
//
//go:embed *.css *.js
var FS embed.FS
