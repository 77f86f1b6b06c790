package nav

import (
	"strings"

	"github.com/milburnr/fcs-site-sub010/internal/content"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  content.Route
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry. The last crumb is the current page.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/services/", Label: "Services"},
	{Path: "/service-areas/", Label: "Service Areas"},
	{Path: "/blog/", Label: "Blog"},
	{Path: "/contact/", Label: "Contact"},
}

// Build renders navigation items with active state given the current path.
// Items whose route the site does not serve are skipped; has may be nil.
func Build(currentPath string, has func(content.Route) bool) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		if has != nil && !has(it.Path) {
			continue
		}
		items = append(items, RenderedItem{
			Href:   it.Path.String(),
			Label:  it.Label,
			Active: isActive(it.Path.String(), currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath)
}

// Trail converts the registry's breadcrumb chain into template crumbs.
func Trail(items []content.BreadcrumbItem) []Crumb {
	crumbs := make([]Crumb, 0, len(items))
	for i, it := range items {
		crumbs = append(crumbs, Crumb{
			Href:   it.Href.String(),
			Label:  it.Name,
			Active: i == len(items)-1,
		})
	}
	return crumbs
}
