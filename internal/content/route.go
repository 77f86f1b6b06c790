package content

import (
	"fmt"
	"path"
	"strings"
)

// Route is a normalised site path with a leading and trailing slash ("/", "/services/").
type Route string

// Root is the home page route.
const Root Route = "/"

// ParseRoute normalises raw into a Route. Query strings and fragments are not allowed.
func ParseRoute(raw string) (Route, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("content: empty route")
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "", fmt.Errorf("content: route %q must be a site-relative path", raw)
	}
	if strings.ContainsAny(raw, "?#") {
		return "", fmt.Errorf("content: route %q must not carry a query or fragment", raw)
	}
	if strings.Contains(raw, "..") {
		return "", fmt.Errorf("content: route %q must not contain '..'", raw)
	}
	clean := path.Clean(raw)
	if clean == "/" {
		return Root, nil
	}
	return Route(strings.ToLower(clean) + "/"), nil
}

func (r Route) String() string { return string(r) }

// IsRoot reports whether r is the home page.
func (r Route) IsRoot() bool { return r == Root }

// Segments splits the route into its path segments. The root has none.
func (r Route) Segments() []string {
	trimmed := strings.Trim(string(r), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Dir returns the route one level up. The root is its own Dir.
func (r Route) Dir() Route {
	segs := r.Segments()
	if len(segs) <= 1 {
		return Root
	}
	return Route("/" + strings.Join(segs[:len(segs)-1], "/") + "/")
}

// Slug returns the last path segment, or "" for the root.
func (r Route) Slug() string {
	segs := r.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// routeFromFile derives the default route for a corpus file: pages/a/b.md -> /a/b/, pages/a/index.md -> /a/.
func routeFromFile(name string) Route {
	name = strings.TrimPrefix(path.Clean(name), pagesDir)
	name = strings.TrimSuffix(name, path.Ext(name))
	if path.Base(name) == "index" {
		name = path.Dir(name)
	}
	r, err := ParseRoute("/" + strings.Trim(name, "/"))
	if err != nil {
		return Root
	}
	return r
}
