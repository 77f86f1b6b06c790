package content

import (
	"html/template"
	"time"
)

// Kind classifies a page and selects which optional sections and schemas apply.
type Kind string

const (
	KindHome        Kind = "home"
	KindIndex       Kind = "index"
	KindService     Kind = "service"
	KindCityService Kind = "city-service"
	KindArticle     Kind = "article"
	KindPage        Kind = "page"
)

func (k Kind) valid() bool {
	switch k {
	case KindHome, KindIndex, KindService, KindCityService, KindArticle, KindPage:
		return true
	}
	return false
}

// FAQEntry is a question/answer pair rendered visibly and as FAQPage structured data.
type FAQEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// CostRow is one line of a cost table, e.g. {"Spall repair", "$35 - $65", "per sq ft"}.
type CostRow struct {
	Label     string `yaml:"label"`
	CostRange string `yaml:"cost_range"`
	Unit      string `yaml:"unit"`
}

// LinkEntry points at another page of the site. Href must be a registered route.
type LinkEntry struct {
	Href  Route  `yaml:"href"`
	Label string `yaml:"label"`
}

// BreadcrumbItem is one step of the trail from the home page to the current page.
type BreadcrumbItem struct {
	Name string
	Href Route
}

// Feature is a card in the feature grid.
type Feature struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
	Icon  string `yaml:"icon"`
}

// Step is one entry of the process section.
type Step struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Hero is the top banner of a page.
type Hero struct {
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	Image      string `yaml:"image"`
	ImageAlt   string `yaml:"image_alt"`
	CTALabel   string `yaml:"cta_label"`
	CTAHref    Route  `yaml:"cta_href"`
}

// CTA is the closing call to action.
type CTA struct {
	Heading string `yaml:"heading"`
	Text    string `yaml:"text"`
	Label   string `yaml:"label"`
	Href    Route  `yaml:"href"`
}

// ServiceInfo describes the offered service on service and city-service pages.
type ServiceInfo struct {
	Name        string `yaml:"name"`
	ServiceType string `yaml:"service_type"`
	PriceRange  string `yaml:"price_range"`
}

// ArticleInfo carries article dates and authorship.
type ArticleInfo struct {
	Author    string
	Published time.Time
	Modified  time.Time
	Image     string
}

// Page is the page-description record every route is rendered from.
type Page struct {
	Route       Route
	Kind        Kind
	Parent      Route
	Order       int
	Label       string
	Title       string
	Description string
	NoIndex     bool

	Hero          Hero
	Intro         string
	IntroHTML     template.HTML
	Body          string
	BodyHTML      template.HTML
	FeaturesTitle string
	Features      []Feature
	CostsTitle    string
	Costs         []CostRow
	CostNote      string
	StepsTitle    string
	Steps         []Step
	FAQTitle      string
	FAQ           []FAQEntry
	LinksTitle    string
	Links         []LinkEntry
	CTA           CTA

	Service *ServiceInfo
	City    string
	Article *ArticleInfo

	// Source is the corpus path the page was loaded from.
	Source    string
	UpdatedAt time.Time
}

// Address is a postal address.
type Address struct {
	Street     string `yaml:"street"`
	Locality   string `yaml:"locality"`
	Region     string `yaml:"region"`
	PostalCode string `yaml:"postal_code"`
	Country    string `yaml:"country"`
}

// Geo holds coordinates for the business listing.
type Geo struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Business is the site-wide company identity from site.yaml.
type Business struct {
	Name          string   `yaml:"name"`
	LegalName     string   `yaml:"legal_name"`
	Tagline       string   `yaml:"tagline"`
	Telephone     string   `yaml:"telephone"`
	Email         string   `yaml:"email"`
	License       string   `yaml:"license"`
	PriceRange    string   `yaml:"price_range"`
	Logo          string   `yaml:"logo"`
	Image         string   `yaml:"image"`
	FoundingYear  int      `yaml:"founding_year"`
	Address       Address  `yaml:"address"`
	Geo           Geo      `yaml:"geo"`
	OpeningHours  []string `yaml:"opening_hours"`
	AreasServed   []string `yaml:"areas_served"`
	SameAs        []string `yaml:"same_as"`
	DefaultAuthor string   `yaml:"default_author"`
}
