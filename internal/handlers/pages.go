package handlers

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/format"
	"github.com/milburnr/fcs-site-sub010/internal/nav"
	"github.com/milburnr/fcs-site-sub010/internal/seo"
)

const (
	defaultFAQTitle   = "Frequently Asked Questions"
	defaultCostsTitle = "Typical Costs"
	defaultStepsTitle = "How It Works"
	defaultLinksTitle = "Related Pages"
	articlesTitle     = "Latest Articles"
)

// Builder turns registry pages into view models.
type Builder struct {
	BaseURL   string
	Analytics Analytics
	Now       func() time.Time
}

// NewBuilder returns a Builder that makes absolute URLs against baseURL.
func NewBuilder(baseURL string, analytics Analytics) *Builder {
	return &Builder{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Analytics: analytics,
		Now:       time.Now,
	}
}

// Page builds the view model for route. It returns content.ErrNotFound for unknown routes.
func (b *Builder) Page(site *content.Site, route content.Route) (PageData, error) {
	p, err := site.Page(route)
	if err != nil {
		return PageData{}, err
	}
	trail, err := site.Breadcrumbs(route)
	if err != nil {
		return PageData{}, err
	}

	data := b.layout(site, route.String())
	data.Breadcrumbs = nav.Trail(trail)
	data.Page = b.pageView(site, p)

	ogType := "website"
	image := firstNonEmpty(p.Hero.Image, site.Business.Image)
	if p.Article != nil {
		ogType = "article"
		image = firstNonEmpty(p.Article.Image, image)
	}
	data.SEO.Meta = seo.NewMeta(p.Title, p.Description, b.url(p.Route.String()),
		b.url(image), site.Business.Name, ogType, p.NoIndex)
	for _, doc := range b.documents(site, p, trail) {
		data.SEO.JSONLD = append(data.SEO.JSONLD, seo.ScriptTag(doc))
	}
	return data, nil
}

// NotFound builds the view model for the 404 page.
func (b *Builder) NotFound(site *content.Site, path string) PageData {
	data := b.layout(site, path)
	title := "Page Not Found | " + site.Business.Name
	data.SEO.Meta = seo.NewMeta(title, "The page you requested could not be found.", "", "", site.Business.Name, "", true)
	data.Breadcrumbs = []nav.Crumb{
		{Href: content.Root.String(), Label: homeLabel(site)},
		{Href: path, Label: "Page not found", Active: true},
	}
	data.Page = PageView{
		Route: path,
		Hero: HeroView{
			Heading:    "We couldn't find that page",
			Subheading: "It may have moved. Try one of our main sections below or give us a call.",
		},
	}
	for _, it := range nav.Build(path, site.Has) {
		data.Page.Links.Items = append(data.Page.Links.Items, LinkItem{Href: it.Href, Label: it.Label})
	}
	if len(data.Page.Links.Items) > 0 {
		data.Page.Links.Title = "Popular sections"
	}
	return data
}

func (b *Builder) layout(site *content.Site, path string) PageData {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return PageData{
		Lang:      "en",
		Path:      path,
		Year:      now().Year(),
		Analytics: b.Analytics,
		Business:  businessView(site.Business),
		Nav:       nav.Build(path, site.Has),
	}
}

func (b *Builder) pageView(site *content.Site, p *content.Page) PageView {
	v := PageView{
		Route:     p.Route.String(),
		Kind:      string(p.Kind),
		IntroHTML: p.IntroHTML,
		BodyHTML:  p.BodyHTML,
		Hero: HeroView{
			Heading:    firstNonEmpty(p.Hero.Heading, p.Label),
			Subheading: p.Hero.Subheading,
			Image:      p.Hero.Image,
			ImageAlt:   firstNonEmpty(p.Hero.ImageAlt, p.Label),
			CTALabel:   p.Hero.CTALabel,
			CTAHref:    p.Hero.CTAHref.String(),
		},
		Features: FeatureGrid{Title: p.FeaturesTitle},
		Costs:    CostTableFrom(p.CostsTitle, p.Costs, p.CostNote),
		Steps:    StepList{Title: p.StepsTitle},
		FAQ:      FAQSectionFrom(p.FAQTitle, p.FAQ),
		Links:    LinkListFrom(p.LinksTitle, p.Links),
		CTA: CTAView{
			Heading: p.CTA.Heading,
			Text:    p.CTA.Text,
			Label:   p.CTA.Label,
			Href:    p.CTA.Href.String(),
		},
	}
	if v.Hero.CTALabel == "" {
		v.Hero.CTAHref = ""
	}
	if v.CTA.Label == "" || v.CTA.Href == "" {
		v.CTA = CTAView{}
	}
	for _, f := range p.Features {
		v.Features.Items = append(v.Features.Items, FeatureItem(f))
	}
	for i, s := range p.Steps {
		v.Steps.Items = append(v.Steps.Items, StepItem{Number: i + 1, Title: s.Title, Text: s.Text})
	}
	if len(v.Steps.Items) > 0 && v.Steps.Title == "" {
		v.Steps.Title = defaultStepsTitle
	}
	if p.Kind == content.KindIndex {
		v.Listing = listingFor(site.Children(p.Route), p.Label)
	}
	if a := p.Article; a != nil {
		v.Article = &ArticleView{
			Author:       a.Author,
			Published:    format.Date(a.Published),
			PublishedISO: format.ISODate(a.Published),
			Image:        a.Image,
		}
		if a.Modified.After(a.Published) {
			v.Article.Modified = format.Date(a.Modified)
			v.Article.ModifiedISO = format.ISODate(a.Modified)
		}
	}
	return v
}

// FAQSectionFrom builds the accordion and its FAQPage JSON-LD from one slice,
// so the visible text and the structured data cannot diverge.
func FAQSectionFrom(title string, entries []content.FAQEntry) FAQSection {
	if len(entries) == 0 {
		return FAQSection{}
	}
	s := FAQSection{Title: firstNonEmpty(title, defaultFAQTitle)}
	for i, e := range entries {
		s.Items = append(s.Items, FAQItem{
			ID:       "faq-" + strconv.Itoa(i+1),
			Question: e.Question,
			Answer:   e.Answer,
		})
	}
	s.JSONLD = seo.ScriptTag(seo.FAQPage(faqPairs(entries)))
	return s
}

func faqPairs(entries []content.FAQEntry) []seo.QA {
	qa := make([]seo.QA, 0, len(entries))
	for _, e := range entries {
		qa = append(qa, seo.QA{Question: e.Question, Answer: e.Answer})
	}
	return qa
}

// CostTableFrom renders cost rows as authored.
func CostTableFrom(title string, rows []content.CostRow, note string) CostTable {
	if len(rows) == 0 {
		return CostTable{}
	}
	t := CostTable{Title: firstNonEmpty(title, defaultCostsTitle), Note: note}
	for _, r := range rows {
		t.Rows = append(t.Rows, CostRowView(r))
	}
	return t
}

// LinkListFrom renders resolved link entries. Labels were defaulted at load time.
func LinkListFrom(title string, links []content.LinkEntry) LinkList {
	if len(links) == 0 {
		return LinkList{}
	}
	l := LinkList{Title: firstNonEmpty(title, defaultLinksTitle)}
	for _, e := range links {
		l.Items = append(l.Items, LinkItem{Href: e.Href.String(), Label: e.Label})
	}
	return l
}

func listingFor(children []*content.Page, label string) Listing {
	if len(children) == 0 {
		return Listing{}
	}
	l := Listing{Title: "Explore " + label}
	articles := 0
	for _, c := range children {
		item := ListingItem{Href: c.Route.String(), Label: c.Label, Description: c.Description}
		if c.Article != nil {
			articles++
			item.Date = format.Date(c.Article.Published)
			item.DateISO = format.ISODate(c.Article.Published)
		}
		l.Items = append(l.Items, item)
	}
	if articles == len(children) {
		l.Title = articlesTitle
	}
	return l
}

// documents lists the head JSON-LD of p. The FAQ document is emitted by the FAQ section.
func (b *Builder) documents(site *content.Site, p *content.Page, trail []content.BreadcrumbItem) []map[string]any {
	biz := b.business(site.Business)
	var docs []map[string]any
	switch p.Kind {
	case content.KindHome:
		docs = append(docs, seo.WebSite(biz.Name, b.url("/")), seo.LocalBusiness(biz))
	case content.KindService, content.KindCityService:
		offer := seo.ServiceOffer{
			Name:        p.Label,
			Description: p.Description,
			URL:         b.url(p.Route.String()),
			AreasServed: site.Business.AreasServed,
		}
		if p.Service != nil {
			offer.Name = firstNonEmpty(p.Service.Name, offer.Name)
			offer.ServiceType = p.Service.ServiceType
			offer.PriceRange = p.Service.PriceRange
		}
		if p.Kind == content.KindCityService && p.City != "" {
			offer.AreasServed = []string{p.City}
		}
		docs = append(docs, seo.Service(offer, biz))
	case content.KindArticle:
		info := seo.ArticleInfo{
			Headline:    firstNonEmpty(p.Hero.Heading, p.Label),
			Description: p.Description,
			URL:         b.url(p.Route.String()),
		}
		if a := p.Article; a != nil {
			info.Author = a.Author
			info.Published = a.Published
			info.Modified = a.Modified
			info.Image = b.url(firstNonEmpty(a.Image, p.Hero.Image))
		}
		docs = append(docs, seo.Article(info, biz))
	case content.KindIndex:
		docs = append(docs, seo.Organization(firstNonEmpty(biz.LegalName, biz.Name), biz.URL, biz.Logo, biz.SameAs))
	case content.KindPage:
		docs = append(docs, seo.LocalBusiness(biz))
	}
	if len(trail) > 1 {
		docs = append(docs, seo.BreadcrumbList(b.crumbs(trail)))
	}
	return docs
}

// Documents returns every JSON-LD document of route, the FAQ document included, for validation.
func (b *Builder) Documents(site *content.Site, route content.Route) ([]map[string]any, error) {
	p, err := site.Page(route)
	if err != nil {
		return nil, err
	}
	trail, err := site.Breadcrumbs(route)
	if err != nil {
		return nil, err
	}
	docs := b.documents(site, p, trail)
	if len(p.FAQ) > 0 {
		docs = append(docs, seo.FAQPage(faqPairs(p.FAQ)))
	}
	return docs, nil
}

func (b *Builder) crumbs(trail []content.BreadcrumbItem) []seo.BreadcrumbItem {
	out := make([]seo.BreadcrumbItem, 0, len(trail))
	for _, t := range trail {
		out = append(out, seo.BreadcrumbItem{Name: t.Name, Item: b.url(t.Href.String())})
	}
	return out
}

func (b *Builder) business(biz content.Business) seo.Business {
	return seo.Business{
		Name:         biz.Name,
		LegalName:    biz.LegalName,
		URL:          b.url("/"),
		Logo:         b.url(biz.Logo),
		Image:        b.url(biz.Image),
		Telephone:    biz.Telephone,
		Email:        biz.Email,
		PriceRange:   biz.PriceRange,
		FoundingYear: biz.FoundingYear,
		Address: seo.PostalAddress{
			Street:     biz.Address.Street,
			Locality:   biz.Address.Locality,
			Region:     biz.Address.Region,
			PostalCode: biz.Address.PostalCode,
			Country:    biz.Address.Country,
		},
		Latitude:     biz.Geo.Latitude,
		Longitude:    biz.Geo.Longitude,
		OpeningHours: biz.OpeningHours,
		AreasServed:  biz.AreasServed,
		SameAs:       biz.SameAs,
	}
}

func (b *Builder) url(p string) string {
	return seo.Absolute(b.BaseURL, p)
}

func businessView(biz content.Business) BusinessView {
	v := BusinessView{
		Name:         biz.Name,
		Tagline:      biz.Tagline,
		Logo:         biz.Logo,
		Phone:        format.Phone(biz.Telephone),
		PhoneHref:    template.URL(format.TelHref(biz.Telephone)),
		Email:        biz.Email,
		Street:       biz.Address.Street,
		License:      biz.License,
		OpeningHours: biz.OpeningHours,
		AreasServed:  biz.AreasServed,
	}
	if biz.Email != "" {
		v.EmailHref = template.URL("mailto:" + biz.Email)
	}
	a := biz.Address
	if a.Locality != "" {
		v.CityLine = strings.TrimSpace(a.Locality + ", " + a.Region + " " + a.PostalCode)
	}
	return v
}

func homeLabel(site *content.Site) string {
	if p, err := site.Page(content.Root); err == nil {
		return p.Label
	}
	return "Home"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
