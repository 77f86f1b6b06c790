// Package corpus embeds the site's page sources: site.yaml and pages/**/*.md.
package corpus

import (
	"embed"
	"io/fs"
)

//go:embed site.yaml pages
var files embed.FS

// FS returns the embedded corpus rooted at the directory holding site.yaml.
func FS() fs.FS {
	return files
}
