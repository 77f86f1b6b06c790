package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
}

// NewMeta fills the Open Graph and Twitter blocks from the page metadata.
// ogType is "website" unless the page is an article.
func NewMeta(title, description, canonical, image, siteName, ogType string, noIndex bool) Meta {
	if ogType == "" {
		ogType = "website"
	}
	m := Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      "index, follow",
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
			Type:        ogType,
			URL:         canonical,
			SiteName:    siteName,
		},
		Twitter: Twitter{Card: "summary", Image: image},
	}
	if image != "" {
		m.Twitter.Card = "summary_large_image"
	}
	if noIndex {
		m.Robots = "noindex, follow"
	}
	return m
}

// Absolute joins a site-relative path onto baseURL. Absolute URLs pass through.
func Absolute(baseURL, p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(p, "/")
}
