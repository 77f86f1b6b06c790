package content

import (
	"fmt"
	"sort"
	"strings"
)

// Site is the immutable, validated set of pages. Its routes are the closed set
// every internal link is checked against.
type Site struct {
	Business Business

	pages   map[Route]*Page
	order   []Route
	version string
}

// Version identifies the corpus contents; it changes whenever any file changes.
func (s *Site) Version() string { return s.version }

// Has reports whether route is registered.
func (s *Site) Has(route Route) bool {
	_, ok := s.pages[route]
	return ok
}

// Page returns the page registered at route.
func (s *Site) Page(route Route) (*Page, error) {
	p, ok := s.pages[route]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, route)
	}
	return p, nil
}

// Lookup resolves a raw request path. The second result is the canonical
// route when raw only differs from it by a missing trailing slash or case.
func (s *Site) Lookup(raw string) (*Page, Route, bool) {
	route, err := ParseRoute(raw)
	if err != nil {
		return nil, "", false
	}
	p, ok := s.pages[route]
	if !ok {
		return nil, "", false
	}
	return p, route, string(route) != raw
}

// Routes returns every registered route in stable order.
func (s *Site) Routes() []Route {
	out := make([]Route, len(s.order))
	copy(out, s.order)
	return out
}

// Pages returns every page in route order.
func (s *Site) Pages() []*Page {
	out := make([]*Page, 0, len(s.order))
	for _, r := range s.order {
		out = append(out, s.pages[r])
	}
	return out
}

// Children lists the pages whose parent is route. Other pages come first by
// Order then Label, followed by articles newest first.
func (s *Site) Children(route Route) []*Page {
	var out []*Page
	for _, r := range s.order {
		p := s.pages[r]
		if !p.Route.IsRoot() && p.Parent == route {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Article != nil) != (b.Article != nil) {
			return a.Article == nil
		}
		if a.Article != nil && !a.Article.Published.Equal(b.Article.Published) {
			return a.Article.Published.After(b.Article.Published)
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return strings.ToLower(a.Label) < strings.ToLower(b.Label)
	})
	return out
}

// Breadcrumbs walks the parent chain from route up to the home page and
// returns it root first.
func (s *Site) Breadcrumbs(route Route) ([]BreadcrumbItem, error) {
	p, err := s.Page(route)
	if err != nil {
		return nil, err
	}
	chain, err := s.ancestry(p)
	if err != nil {
		return nil, err
	}
	items := make([]BreadcrumbItem, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		items = append(items, BreadcrumbItem{Name: chain[i].Label, Href: chain[i].Route})
	}
	return items, nil
}

// ancestry returns p and its ancestors, nearest first, ending at the root.
func (s *Site) ancestry(p *Page) ([]*Page, error) {
	seen := map[Route]bool{}
	var chain []*Page
	for cur := p; ; {
		if seen[cur.Route] {
			return nil, fmt.Errorf("content: parent cycle through %s", cur.Route)
		}
		seen[cur.Route] = true
		chain = append(chain, cur)
		if cur.Route.IsRoot() {
			return chain, nil
		}
		next, ok := s.pages[cur.Parent]
		if !ok {
			return nil, fmt.Errorf("content: %s: parent %q is not a page", cur.Route, cur.Parent)
		}
		cur = next
	}
}
