package content

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type pageFrontMatter struct {
	Route       string `yaml:"route"`
	Kind        string `yaml:"kind"`
	Parent      string `yaml:"parent"`
	Order       int    `yaml:"order"`
	Label       string `yaml:"label"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	NoIndex     bool   `yaml:"noindex"`

	Hero          Hero        `yaml:"hero"`
	Intro         string      `yaml:"intro"`
	FeaturesTitle string      `yaml:"features_title"`
	Features      []Feature   `yaml:"features"`
	CostsTitle    string      `yaml:"costs_title"`
	Costs         []CostRow   `yaml:"costs"`
	CostNote      string      `yaml:"cost_note"`
	StepsTitle    string      `yaml:"steps_title"`
	Steps         []Step      `yaml:"steps"`
	FAQTitle      string      `yaml:"faq_title"`
	FAQ           []FAQEntry  `yaml:"faq"`
	LinksTitle    string      `yaml:"links_title"`
	Links         []LinkEntry `yaml:"links"`
	CTA           CTA         `yaml:"cta"`

	Service *ServiceInfo `yaml:"service"`
	City    string       `yaml:"city"`
	Article *struct {
		Author    string `yaml:"author"`
		Published string `yaml:"published"`
		Modified  string `yaml:"modified"`
		Image     string `yaml:"image"`
	} `yaml:"article"`
	UpdatedAt string `yaml:"updated_at"`
}

// splitFrontMatter separates a leading "---" delimited YAML block from the markdown body.
func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// labelFromTitle drops the " | Brand" suffix SEO titles usually carry.
func labelFromTitle(title string) string {
	if i := strings.Index(title, " | "); i > 0 {
		return strings.TrimSpace(title[:i])
	}
	return strings.TrimSpace(title)
}

// labelFromSlug turns "fort-lauderdale" into "Fort Lauderdale".
func labelFromSlug(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
