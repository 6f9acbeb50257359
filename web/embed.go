package web

import "embed"

// Static embeds the dashboard bundle.
//
//go:embed static
var Static embed.FS
