package seo

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strconv"
	"time"
)

const schemaContext = "https://schema.org"

// ScriptTag renders doc as a JSON-LD script block. encoding/json escapes <, > and &,
// so the payload cannot terminate the script element early.
func ScriptTag(doc map[string]any) template.HTML {
	b, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	buf.WriteString(`<script type="application/ld+json">`)
	buf.Write(b)
	buf.WriteString(`</script>`)
	return template.HTML(buf.String())
}

// PostalAddress is the address block shared by business documents.
type PostalAddress struct {
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

// Business is the input to the organisation-level documents.
type Business struct {
	Name         string
	LegalName    string
	URL          string
	Logo         string
	Image        string
	Telephone    string
	Email        string
	PriceRange   string
	FoundingYear int
	Address      PostalAddress
	Latitude     float64
	Longitude    float64
	OpeningHours []string
	AreasServed  []string
	SameAs       []string
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// LocalBusiness describes the company as a schema.org GeneralContractor.
func LocalBusiness(b Business) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "GeneralContractor",
		"name":     b.Name,
	}
	setIf(m, "legalName", b.LegalName)
	setIf(m, "url", b.URL)
	if b.URL != "" {
		m["@id"] = b.URL + "#business"
	}
	setIf(m, "logo", b.Logo)
	setIf(m, "image", b.Image)
	setIf(m, "telephone", b.Telephone)
	setIf(m, "email", b.Email)
	setIf(m, "priceRange", b.PriceRange)
	if b.FoundingYear > 0 {
		m["foundingDate"] = strconv.Itoa(b.FoundingYear)
	}
	if addr := postalAddress(b.Address); addr != nil {
		m["address"] = addr
	}
	if b.Latitude != 0 || b.Longitude != 0 {
		m["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  b.Latitude,
			"longitude": b.Longitude,
		}
	}
	if len(b.OpeningHours) > 0 {
		m["openingHours"] = b.OpeningHours
	}
	if areas := places(b.AreasServed); len(areas) > 0 {
		m["areaServed"] = areas
	}
	if len(b.SameAs) > 0 {
		m["sameAs"] = b.SameAs
	}
	return m
}

// ServiceOffer is the input to Service.
type ServiceOffer struct {
	Name        string
	ServiceType string
	Description string
	URL         string
	PriceRange  string
	AreasServed []string
}

// Service returns a Service document provided by the business.
func Service(s ServiceOffer, provider Business) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Service",
		"name":     s.Name,
	}
	setIf(m, "serviceType", s.ServiceType)
	setIf(m, "description", s.Description)
	setIf(m, "url", s.URL)
	p := map[string]any{
		"@type": "GeneralContractor",
		"name":  provider.Name,
	}
	setIf(p, "telephone", provider.Telephone)
	setIf(p, "url", provider.URL)
	if provider.URL != "" {
		p["@id"] = provider.URL + "#business"
	}
	m["provider"] = p
	if areas := places(s.AreasServed); len(areas) > 0 {
		m["areaServed"] = areas
	}
	if s.PriceRange != "" {
		m["offers"] = map[string]any{
			"@type":         "Offer",
			"priceCurrency": "USD",
			"description":   s.PriceRange,
		}
	}
	return m
}

// ArticleInfo is the input to Article.
type ArticleInfo struct {
	Headline    string
	Description string
	URL         string
	Image       string
	Author      string
	Published   time.Time
	Modified    time.Time
}

// Article returns an Article document published by the business.
func Article(a ArticleInfo, publisher Business) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": a.Headline,
	}
	setIf(m, "description", a.Description)
	setIf(m, "url", a.URL)
	if a.URL != "" {
		m["mainEntityOfPage"] = a.URL
	}
	setIf(m, "image", a.Image)
	if a.Author != "" {
		m["author"] = map[string]any{"@type": "Organization", "name": a.Author}
	}
	if !a.Published.IsZero() {
		m["datePublished"] = a.Published.Format("2006-01-02")
		modified := a.Modified
		if modified.IsZero() {
			modified = a.Published
		}
		m["dateModified"] = modified.Format("2006-01-02")
	}
	pub := map[string]any{"@type": "Organization", "name": publisher.Name}
	if publisher.Logo != "" {
		pub["logo"] = map[string]any{"@type": "ImageObject", "url": publisher.Logo}
	}
	m["publisher"] = pub
	return m
}

// QA is one question and its answer.
type QA struct {
	Question string
	Answer   string
}

// FAQPage returns an FAQPage document whose mainEntity follows the order of entries.
func FAQPage(entries []QA) map[string]any {
	main := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		main = append(main, map[string]any{
			"@type": "Question",
			"name":  e.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  e.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": main,
	}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

func postalAddress(a PostalAddress) map[string]any {
	if a == (PostalAddress{}) {
		return nil
	}
	m := map[string]any{"@type": "PostalAddress"}
	setIf(m, "streetAddress", a.Street)
	setIf(m, "addressLocality", a.Locality)
	setIf(m, "addressRegion", a.Region)
	setIf(m, "postalCode", a.PostalCode)
	setIf(m, "addressCountry", a.Country)
	return m
}

func places(names []string) []map[string]any {
	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, map[string]any{"@type": "City", "name": n})
	}
	return out
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
