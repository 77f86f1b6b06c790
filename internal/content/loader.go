package content

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	siteFile = "site.yaml"
	pagesDir = "pages"
)

// LoadOption customises Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	markdown *Markdown
}

// WithMarkdown overrides the markdown converter.
func WithMarkdown(md *Markdown) LoadOption {
	return func(o *loadOptions) {
		o.markdown = md
	}
}

// Load reads site.yaml and every pages/**/*.md file of fsys, resolves routes,
// parents and links, and returns the validated Site. Structural problems are
// reported together as a *ValidationError.
func Load(fsys fs.FS, opts ...LoadOption) (*Site, error) {
	options := loadOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.markdown == nil {
		options.markdown = NewMarkdown()
	}

	hash := sha256.New()
	var problems issues

	raw, err := fs.ReadFile(fsys, siteFile)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", siteFile, err)
	}
	hash.Write(raw)
	var business Business
	if err := yaml.Unmarshal(raw, &business); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", siteFile, err)
	}
	if strings.TrimSpace(business.Name) == "" {
		problems.add(siteFile, "name", "business name is required")
	}

	files, err := pageFiles(fsys)
	if err != nil {
		return nil, err
	}

	site := &Site{Business: business, pages: map[Route]*Page{}}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		hash.Write([]byte(name))
		hash.Write(data)

		page, err := parsePage(name, data, options.markdown)
		if err != nil {
			problems.add(name, "", "%v", err)
			continue
		}
		if page.Kind == KindArticle && page.Article.Author == "" {
			page.Article.Author = business.DefaultAuthor
		}
		if prev, dup := site.pages[page.Route]; dup {
			problems.add(name, "route", "%s is already defined by %s", page.Route, prev.Source)
			continue
		}
		site.pages[page.Route] = page
		site.order = append(site.order, page.Route)
	}
	sort.Slice(site.order, func(i, j int) bool { return site.order[i] < site.order[j] })

	resolve(site, &problems)
	if err := problems.err(); err != nil {
		return nil, err
	}
	site.version = hex.EncodeToString(hash.Sum(nil))[:12]
	return site, nil
}

func pageFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, pagesDir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".md" {
			return nil
		}
		files = append(files, name)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("content: no %s directory", pagesDir)
		}
		return nil, fmt.Errorf("content: walk %s: %w", pagesDir, err)
	}
	sort.Strings(files)
	return files, nil
}

func parsePage(name string, data []byte, md *Markdown) (*Page, error) {
	fm, body := splitFrontMatter(string(data))
	if strings.TrimSpace(fm) == "" {
		return nil, errors.New("missing front matter")
	}
	var front pageFrontMatter
	if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	route := routeFromFile(name)
	if front.Route != "" {
		r, err := ParseRoute(front.Route)
		if err != nil {
			return nil, err
		}
		route = r
	}
	kind := Kind(strings.TrimSpace(front.Kind))
	if kind == "" {
		kind = KindPage
		if route == Root {
			kind = KindHome
		}
	}
	if !kind.valid() {
		return nil, fmt.Errorf("unknown kind %q", front.Kind)
	}

	page := &Page{
		Route:         route,
		Kind:          kind,
		Order:         front.Order,
		Title:         strings.TrimSpace(front.Title),
		Description:   strings.TrimSpace(front.Description),
		NoIndex:       front.NoIndex,
		Hero:          front.Hero,
		Intro:         front.Intro,
		Body:          body,
		FeaturesTitle: front.FeaturesTitle,
		Features:      front.Features,
		CostsTitle:    front.CostsTitle,
		Costs:         front.Costs,
		CostNote:      strings.TrimSpace(front.CostNote),
		StepsTitle:    front.StepsTitle,
		Steps:         front.Steps,
		FAQTitle:      front.FAQTitle,
		FAQ:           normalizeFAQ(front.FAQ),
		LinksTitle:    front.LinksTitle,
		Links:         front.Links,
		CTA:           front.CTA,
		Service:       front.Service,
		City:          strings.TrimSpace(front.City),
		Source:        name,
		UpdatedAt:     parseContentDate(front.UpdatedAt),
	}
	page.Label = firstNonEmpty(strings.TrimSpace(front.Label), labelFromTitle(page.Title), labelFromSlug(page.Route.Slug()))
	if route == Root && strings.TrimSpace(front.Label) == "" {
		page.Label = "Home"
	}

	if front.Parent != "" {
		parent, err := ParseRoute(front.Parent)
		if err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
		page.Parent = parent
	} else if route != Root {
		page.Parent = route.Dir()
	}

	if front.Article != nil {
		page.Article = &ArticleInfo{
			Author:    strings.TrimSpace(front.Article.Author),
			Published: parseContentDate(front.Article.Published),
			Modified:  parseContentDate(front.Article.Modified),
			Image:     strings.TrimSpace(front.Article.Image),
		}
	} else if kind == KindArticle {
		page.Article = &ArticleInfo{}
	}
	if page.Article != nil && page.UpdatedAt.IsZero() {
		page.UpdatedAt = latest(page.Article.Published, page.Article.Modified)
	}

	var err error
	if page.IntroHTML, err = md.Render(front.Intro); err != nil {
		return nil, fmt.Errorf("intro: %w", err)
	}
	if page.BodyHTML, err = md.Render(body); err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	return page, nil
}

// resolve checks every cross-page reference against the registered routes.
func resolve(site *Site, problems *issues) {
	if _, ok := site.pages[Root]; !ok && len(site.pages) > 0 {
		problems.add(pagesDir, "route", "no page is registered at %s", Root)
	}
	for _, route := range site.order {
		p := site.pages[route]
		if route != Root {
			if _, ok := site.pages[p.Parent]; !ok {
				problems.add(p.Source, "parent", "%s is not a page", p.Parent)
			} else if _, err := site.ancestry(p); err != nil {
				problems.add(p.Source, "parent", "%v", err)
			}
		}
		for i, link := range p.Links {
			target, err := ParseRoute(string(link.Href))
			if err != nil {
				problems.add(p.Source, fmt.Sprintf("links[%d]", i), "%v", err)
				continue
			}
			if _, ok := site.pages[target]; !ok {
				problems.add(p.Source, fmt.Sprintf("links[%d]", i), "%s is not a page", link.Href)
				continue
			}
			p.Links[i].Href = target
			if strings.TrimSpace(link.Label) == "" {
				p.Links[i].Label = site.pages[target].Label
			}
		}
		resolveHref(site, problems, p, "cta.href", &p.CTA.Href)
		resolveHref(site, problems, p, "hero.cta_href", &p.Hero.CTAHref)
	}
}

func resolveHref(site *Site, problems *issues, p *Page, field string, href *Route) {
	if *href == "" {
		return
	}
	target, err := ParseRoute(string(*href))
	if err != nil {
		problems.add(p.Source, field, "%v", err)
		return
	}
	if _, ok := site.pages[target]; !ok {
		problems.add(p.Source, field, "%s is not a page", *href)
		return
	}
	*href = target
}

// normalizeFAQ folds CRLF and lone CR line breaks to LF. HTML parsing does
// the same to visible text, so the structured data must match it.
func normalizeFAQ(entries []FAQEntry) []FAQEntry {
	for i := range entries {
		entries[i].Question = newlines.Replace(entries[i].Question)
		entries[i].Answer = newlines.Replace(entries[i].Answer)
	}
	return entries
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func latest(ts ...time.Time) time.Time {
	var out time.Time
	for _, t := range ts {
		if t.After(out) {
			out = t
		}
	}
	return out
}
