// Package assets embeds the static files shipped inside the assetbridge
// binary, so the dev bridge works without any files installed next to it.
package assets

import (
	_ "embed"
)

//go:embed client.js
var reloadClient string

// ReloadClient returns the browser-side live-reload script. It connects
// to the dev bridge's SSE endpoint and reloads the page on change events.
func ReloadClient() string {
	return reloadClient
}
