// Package sitemap writes sitemap.xml and robots.txt for the registered routes.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/seo"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is the <urlset> root element.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one <url> entry.
type URL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

// Build lists every indexable page in route order.
func Build(site *content.Site, baseURL string) URLSet {
	set := URLSet{Xmlns: xmlns}
	for _, p := range site.Pages() {
		if p.NoIndex {
			continue
		}
		set.URLs = append(set.URLs, URL{
			Loc:      seo.Absolute(baseURL, p.Route.String()),
			LastMod:  lastMod(p),
			Priority: priority(p),
		})
	}
	return set
}

func lastMod(p *content.Page) string {
	if p.UpdatedAt.IsZero() {
		return ""
	}
	return p.UpdatedAt.UTC().Format(time.DateOnly)
}

func priority(p *content.Page) string {
	switch p.Kind {
	case content.KindHome:
		return "1.0"
	case content.KindService, content.KindIndex:
		return "0.8"
	default:
		return "0.6"
	}
}

// Write encodes the sitemap with the XML declaration.
func Write(w io.Writer, set URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return enc.Close()
}

// Robots returns robots.txt allowing everything except noindex pages and
// pointing crawlers at the sitemap.
func Robots(site *content.Site, baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	disallowed := false
	for _, p := range site.Pages() {
		if p.NoIndex {
			fmt.Fprintf(&b, "Disallow: %s\n", p.Route)
			disallowed = true
		}
	}
	if !disallowed {
		b.WriteString("Allow: /\n")
	}
	fmt.Fprintf(&b, "\nSitemap: %s\n", seo.Absolute(baseURL, "/sitemap.xml"))
	return b.String()
}
