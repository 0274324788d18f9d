package web

import _ "embed"

// ReloadJS connects a page to the live-reload channel. Pages opt in with
// <script src="/_dev/reload.js"></script>.
//
//go:embed reload.js
var ReloadJS []byte
