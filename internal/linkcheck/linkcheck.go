// Package linkcheck extracts link targets from HTML and tells internal ones apart.
package linkcheck

import (
	"io"
	"io/fs"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is an anchor found in a document.
type Link struct {
	Href string
	Text string
}

// Anchors returns every <a href> of the HTML read from r, in document order.
func Anchors(r io.Reader) ([]Link, error) {
	z := html.NewTokenizer(r)
	var (
		links []Link
		open  = -1
		text  strings.Builder
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return links, nil
		case html.StartTagToken:
			tok := z.Token()
			if tok.Data != "a" {
				continue
			}
			for _, attr := range tok.Attr {
				if attr.Key == "href" {
					links = append(links, Link{Href: attr.Val})
					open = len(links) - 1
					text.Reset()
					break
				}
			}
		case html.TextToken:
			if open >= 0 {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			if open >= 0 {
				if name, _ := z.TagName(); string(name) == "a" {
					links[open].Text = strings.TrimSpace(text.String())
					open = -1
				}
			}
		}
	}
}

// Hrefs is Anchors reduced to the raw href values.
func Hrefs(fragment string) ([]string, error) {
	links, err := Anchors(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Href)
	}
	return out, nil
}

// AssetPrefix is the path the static asset tree is mounted at.
const AssetPrefix = "/assets/"

// Internal reports whether href, found on the page at pagePath, points inside
// the site and returns the resolved path without query or fragment. Relative
// hrefs resolve against pagePath. Absolute URLs are internal when their host
// matches base; base may be nil. Other schemes (tel:, mailto:) and same-page
// fragments are not internal.
func Internal(base *url.URL, pagePath, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	switch u.Scheme {
	case "", "http", "https":
	default:
		return "", false
	}
	if u.Host != "" {
		if base == nil || !strings.EqualFold(u.Host, base.Host) {
			return "", false
		}
		if u.Path == "" {
			return "/", true
		}
		return u.Path, true
	}
	if strings.HasPrefix(u.Path, "/") {
		return u.Path, true
	}
	if !strings.HasPrefix(pagePath, "/") {
		return "", false
	}
	resolved := (&url.URL{Path: pagePath}).ResolveReference(&url.URL{Path: u.Path})
	return resolved.Path, true
}

// Asset returns the name of target inside the asset tree when target is an asset path.
func Asset(target string) (string, bool) {
	return strings.CutPrefix(target, AssetPrefix)
}

// AssetExists reports whether the asset path target names a file in assets.
func AssetExists(assets fs.FS, target string) bool {
	name, ok := Asset(target)
	if !ok || name == "" {
		return false
	}
	_, err := fs.Stat(assets, name)
	return err == nil
}
