// Package templates embeds the html/template sources for the site.
package templates

import "embed"

//go:embed layouts/*.tmpl partials/*.tmpl pages/*.tmpl
var files embed.FS

// FS returns the embedded template tree.
func FS() embed.FS { return files }
