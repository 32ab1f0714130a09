// Package web embeds the static single-page client served by the API binary.
package web

import "embed"

//go:embed static
var Static embed.FS
