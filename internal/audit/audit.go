// Package audit inspects rendered documents for the consistency properties
// the content checker cannot see from page records alone.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/handlers"
	"github.com/milburnr/fcs-site-sub010/internal/linkcheck"
	"github.com/milburnr/fcs-site-sub010/internal/render"
	"github.com/milburnr/fcs-site-sub010/internal/seo"
)

// Finding is one problem found in a rendered document.
type Finding struct {
	Path    string
	Check   string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Path, f.Check, f.Message)
}

// Check names.
const (
	CheckFAQ         = "faq"
	CheckLinks       = "links"
	CheckJSONLD      = "jsonld"
	CheckBreadcrumbs = "breadcrumbs"
	CheckParse       = "parse"
)

// Auditor holds what the document checks resolve against.
type Auditor struct {
	// BaseURL is the absolute site origin used in canonical and JSON-LD URLs.
	BaseURL string
	// Resolves reports whether an internal path is served.
	Resolves func(path string) bool
}

// Document runs every check against one rendered page served at path.
func (a Auditor) Document(path string, body []byte) []Finding {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return []Finding{{Path: path, Check: CheckParse, Message: err.Error()}}
	}
	r := &report{path: path}
	a.checkJSONLD(doc, r)
	checkFAQ(doc, r)
	a.checkLinks(doc, r)
	a.checkBreadcrumbs(doc, r)
	return r.findings
}

type report struct {
	path     string
	findings []Finding
}

func (r *report) add(check, format string, args ...any) {
	r.findings = append(r.findings, Finding{Path: r.path, Check: check, Message: fmt.Sprintf(format, args...)})
}

func ldScripts(sel *goquery.Selection) *goquery.Selection {
	return sel.Find(`script[type="application/ld+json"]`)
}

func (a Auditor) checkJSONLD(doc *goquery.Document, r *report) {
	ldScripts(doc.Selection).Each(func(i int, s *goquery.Selection) {
		if err := seo.ValidateScript(s.Text()); err != nil {
			r.add(CheckJSONLD, "script %d: %v", i, err)
		}
	})
}

type faqDocument struct {
	Type       string `json:"@type"`
	MainEntity []struct {
		Name           string `json:"name"`
		AcceptedAnswer struct {
			Text string `json:"text"`
		} `json:"acceptedAnswer"`
	} `json:"mainEntity"`
}

func checkFAQ(doc *goquery.Document, r *report) {
	var visible []seo.QA
	doc.Find(".faq details").Each(func(_ int, s *goquery.Selection) {
		if _, open := s.Attr("open"); open {
			r.add(CheckFAQ, "accordion item %q starts expanded", s.Find("summary").Text())
		}
		visible = append(visible, seo.QA{Question: s.Find("summary").Text(), Answer: s.Find(".faq-answer").Text()})
	})

	var structured []seo.QA
	found := 0
	ldScripts(doc.Selection).Each(func(_ int, s *goquery.Selection) {
		var ld faqDocument
		if json.Unmarshal([]byte(s.Text()), &ld) != nil || ld.Type != "FAQPage" {
			return
		}
		found++
		for _, q := range ld.MainEntity {
			structured = append(structured, seo.QA{Question: q.Name, Answer: q.AcceptedAnswer.Text})
		}
	})

	switch {
	case len(visible) == 0 && found == 0:
		return
	case found == 0:
		r.add(CheckFAQ, "%d visible questions but no FAQPage structured data", len(visible))
		return
	case found > 1:
		r.add(CheckFAQ, "%d FAQPage documents, want 1", found)
	}
	if len(visible) != len(structured) {
		r.add(CheckFAQ, "%d visible questions, %d in structured data", len(visible), len(structured))
		return
	}
	for i := range visible {
		if visible[i] != structured[i] {
			r.add(CheckFAQ, "entry %d differs: visible %q / structured %q", i, visible[i].Question, structured[i].Question)
		}
	}
}

func (a Auditor) checkLinks(doc *goquery.Document, r *report) {
	if a.Resolves == nil {
		return
	}
	html, err := doc.Find("body").Html()
	if err != nil {
		r.add(CheckParse, "%v", err)
		return
	}
	links, err := linkcheck.Anchors(strings.NewReader(html))
	if err != nil {
		r.add(CheckParse, "%v", err)
		return
	}
	var base *url.URL
	if a.BaseURL != "" {
		base, _ = url.Parse(a.BaseURL)
	}
	seen := map[string]bool{}
	for _, l := range links {
		target, ok := linkcheck.Internal(base, r.path, l.Href)
		if !ok || seen[target] {
			continue
		}
		seen[target] = true
		if !a.Resolves(target) {
			r.add(CheckLinks, "link %q (%s) does not resolve", l.Href, l.Text)
		}
	}
}

type breadcrumbDocument struct {
	Type  string `json:"@type"`
	Items []struct {
		Position int    `json:"position"`
		Name     string `json:"name"`
		Item     string `json:"item"`
	} `json:"itemListElement"`
}

func (a Auditor) checkBreadcrumbs(doc *goquery.Document, r *report) {
	crumbs := doc.Find(".breadcrumbs li")
	var names, hrefs []string
	crumbs.Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.TrimSpace(s.Text()))
		if href, ok := s.Find("a").Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	if len(names) > 0 {
		if len(hrefs) == 0 || hrefs[0] != "/" {
			r.add(CheckBreadcrumbs, "trail does not start at /")
		}
		if len(hrefs) != len(names)-1 {
			r.add(CheckBreadcrumbs, "only the last crumb may be unlinked")
		}
		seen := map[string]bool{r.path: true}
		for _, h := range hrefs {
			if seen[h] {
				r.add(CheckBreadcrumbs, "%s appears twice in the trail", h)
			}
			seen[h] = true
		}
	}

	var list *breadcrumbDocument
	ldScripts(doc.Find("head")).Each(func(_ int, s *goquery.Selection) {
		var ld breadcrumbDocument
		if json.Unmarshal([]byte(s.Text()), &ld) == nil && ld.Type == "BreadcrumbList" {
			list = &ld
		}
	})
	if list == nil {
		if len(names) > 1 {
			r.add(CheckBreadcrumbs, "visible trail without BreadcrumbList structured data")
		}
		return
	}
	if len(list.Items) != len(names) {
		r.add(CheckBreadcrumbs, "%d visible crumbs, %d in structured data", len(names), len(list.Items))
		return
	}
	for i, item := range list.Items {
		if item.Position != i+1 {
			r.add(CheckBreadcrumbs, "structured crumb %d has position %d", i, item.Position)
		}
		if item.Name != names[i] {
			r.add(CheckBreadcrumbs, "crumb %d named %q visibly and %q in structured data", i, names[i], item.Name)
		}
	}
	if a.BaseURL != "" {
		if first := list.Items[0].Item; first != seo.Absolute(a.BaseURL, "/") {
			r.add(CheckBreadcrumbs, "structured trail starts at %s", first)
		}
		if last := list.Items[len(list.Items)-1].Item; last != seo.Absolute(a.BaseURL, r.path) {
			r.add(CheckBreadcrumbs, "structured trail ends at %s, want %s", last, seo.Absolute(a.BaseURL, r.path))
		}
	}
}

// Renderer executes a page view model into a document.
type Renderer interface {
	Render(ctx context.Context, name string, data any) ([]byte, error)
}

// Options lists what besides the registered routes is served.
type Options struct {
	// Assets is the tree mounted at /assets/. Nil accepts any /assets/ link.
	Assets fs.FS
	// Extra are non-page paths such as /sitemap.xml.
	Extra []string
}

// Site renders every registered route with the page template and audits the output.
func Site(ctx context.Context, site *content.Site, r Renderer, b *handlers.Builder, opts Options) ([]Finding, error) {
	served := map[string]bool{}
	for _, p := range opts.Extra {
		served[p] = true
	}
	a := Auditor{
		BaseURL: b.BaseURL,
		Resolves: func(p string) bool {
			if _, ok := linkcheck.Asset(p); ok {
				return opts.Assets == nil || linkcheck.AssetExists(opts.Assets, p)
			}
			return served[p] || site.Has(content.Route(p))
		},
	}
	var findings []Finding
	for _, route := range site.Routes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := b.Page(site, route)
		if err != nil {
			return nil, err
		}
		body, err := r.Render(ctx, render.Page, data)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", route, err)
		}
		findings = append(findings, a.Document(route.String(), body)...)
	}
	return findings, nil
}
