// Package appfs exposes files that ship inside the compiled binary.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
