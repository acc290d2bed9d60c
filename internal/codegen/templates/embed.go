// Package templates holds the built-in generator templates.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed *.tmpl
var files embed.FS

// FS returns the built-in templates. Paths are the bare file names, e.g.
// "shmdef.h.tmpl".
func FS() fs.FS { return files }
