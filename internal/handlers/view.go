package handlers

import (
	"html/template"

	"github.com/milburnr/fcs-site-sub010/internal/nav"
	"github.com/milburnr/fcs-site-sub010/internal/seo"
)

// PageData is the view model every template executes against.
type PageData struct {
	Lang        string
	Path        string
	Year        int
	SEO         SEOData
	Analytics   Analytics
	Business    BusinessView
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Page        PageView
}

// SEOData is the head metadata plus JSON-LD blocks emitted in <head>.
type SEOData struct {
	seo.Meta
	JSONLD []template.HTML
}

// BusinessView is the header/footer company block.
type BusinessView struct {
	Name         string
	Tagline      string
	Logo         string
	Phone        string
	PhoneHref    template.URL
	Email        string
	EmailHref    template.URL
	Street       string
	CityLine     string
	License      string
	OpeningHours []string
	AreasServed  []string
}

// PageView carries every section of the generic page template. Empty sections render nothing.
type PageView struct {
	Route     string
	Kind      string
	Hero      HeroView
	IntroHTML template.HTML
	BodyHTML  template.HTML
	Features  FeatureGrid
	Costs     CostTable
	Steps     StepList
	Listing   Listing
	FAQ       FAQSection
	Links     LinkList
	CTA       CTAView
	Article   *ArticleView
}

// HeroView is the page heading block with an optional image and call to action.
type HeroView struct {
	Heading    string
	Subheading string
	Image      string
	ImageAlt   string
	CTALabel   string
	CTAHref    string
}

// FeatureGrid is a titled grid of feature cards.
type FeatureGrid struct {
	Title string
	Items []FeatureItem
}

// FeatureItem is one card in a FeatureGrid.
type FeatureItem struct {
	Title string
	Text  string
	Icon  string
}

// CostTable renders rows in authored order.
type CostTable struct {
	Title string
	Rows  []CostRowView
	Note  string
}

// CostRowView is one priced line of a CostTable.
type CostRowView struct {
	Label     string
	CostRange string
	Unit      string
}

// StepList is an ordered process section.
type StepList struct {
	Title string
	Items []StepItem
}

// StepItem is one numbered step.
type StepItem struct {
	Number int
	Title  string
	Text   string
}

// Listing is the child-page grid of index pages.
type Listing struct {
	Title string
	Items []ListingItem
}

// ListingItem links to one child page.
type ListingItem struct {
	Href        string
	Label       string
	Description string
	Date        string
	DateISO     string
}

// FAQSection holds the accordion entries and the FAQPage JSON-LD built from the same slice.
type FAQSection struct {
	Title  string
	Items  []FAQItem
	JSONLD template.HTML
}

// FAQItem is one collapsed accordion entry.
type FAQItem struct {
	ID       string
	Question string
	Answer   string
}

// LinkList is a labelled list of internal links.
type LinkList struct {
	Title string
	Items []LinkItem
}

// LinkItem is one internal link with its visible label.
type LinkItem struct {
	Href  string
	Label string
}

// CTAView is the closing call-to-action band.
type CTAView struct {
	Heading string
	Text    string
	Label   string
	Href    string
}

// ArticleView carries the byline dates and image of article pages.
type ArticleView struct {
	Author       string
	Published    string
	PublishedISO string
	Modified     string
	ModifiedISO  string
	Image        string
}
