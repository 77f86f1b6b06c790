package content

import (
	"fmt"
	"io/fs"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/milburnr/fcs-site-sub010/internal/linkcheck"
)

// Metadata limits commonly applied by search engines when displaying results.
const (
	MaxTitleLength       = 60
	MaxDescriptionLength = 160
)

var costRangePattern = regexp.MustCompile(`^\$\d{1,3}(,\d{3})*(\.\d{2})?( - \$\d{1,3}(,\d{3})*(\.\d{2})?)?(\+|/[a-z][a-z .-]*)?$`)

// ValidCostRange reports whether v reads like "$X", "$X - $Y", "$X+" or "$X/unit".
func ValidCostRange(v string) bool {
	return costRangePattern.MatchString(v)
}

// CheckOptions configures Check.
type CheckOptions struct {
	// Assets is the static asset tree served under /assets/. Nil skips image checks.
	Assets fs.FS
	// ExtraRoutes are non-page paths that prose may link to (e.g. /sitemap.xml).
	ExtraRoutes []string
	// BaseURL is the canonical origin; absolute prose links on its host are checked too.
	BaseURL string
}

// Check runs the authoring checks that do not prevent the site from loading:
// metadata limits, cost row formats, FAQ completeness, kind specific fields,
// image references and links inside prose.
func Check(site *Site, opts CheckOptions) []Issue {
	var problems issues
	extra := map[string]bool{}
	for _, r := range opts.ExtraRoutes {
		extra[r] = true
	}
	var base *url.URL
	if opts.BaseURL != "" {
		base, _ = url.Parse(opts.BaseURL)
	}

	for _, p := range site.Pages() {
		checkMeta(p, &problems)

		for i, row := range p.Costs {
			field := fmt.Sprintf("costs[%d]", i)
			if strings.TrimSpace(row.Label) == "" {
				problems.add(p.Source, field, "label is empty")
			}
			if !ValidCostRange(row.CostRange) {
				problems.add(p.Source, field, "cost range %q does not match \"$X - $Y\" or \"$X/unit\"", row.CostRange)
			}
		}
		for i, entry := range p.FAQ {
			field := fmt.Sprintf("faq[%d]", i)
			if strings.TrimSpace(entry.Question) == "" {
				problems.add(p.Source, field, "question is empty")
			}
			if strings.TrimSpace(entry.Answer) == "" {
				problems.add(p.Source, field, "answer is empty")
			}
		}

		switch p.Kind {
		case KindService, KindCityService:
			if p.Service == nil || strings.TrimSpace(p.Service.Name) == "" {
				problems.add(p.Source, "service.name", "required for %s pages", p.Kind)
			} else if p.Service.PriceRange != "" && !ValidCostRange(p.Service.PriceRange) {
				problems.add(p.Source, "service.price_range", "%q is not a price range", p.Service.PriceRange)
			}
			if p.Kind == KindCityService && p.City == "" {
				problems.add(p.Source, "city", "required for city-service pages")
			}
		case KindArticle:
			if p.Article == nil || p.Article.Published.IsZero() {
				problems.add(p.Source, "article.published", "articles need a publish date")
			} else if !p.Article.Modified.IsZero() && p.Article.Modified.Before(p.Article.Published) {
				problems.add(p.Source, "article.modified", "modified date precedes publish date")
			}
		}

		if opts.Assets != nil {
			checkAsset(p, opts.Assets, "hero.image", p.Hero.Image, &problems)
			if p.Article != nil {
				checkAsset(p, opts.Assets, "article.image", p.Article.Image, &problems)
			}
		}

		for field, fragment := range map[string]string{"intro": string(p.IntroHTML), "body": string(p.BodyHTML)} {
			hrefs, err := linkcheck.Hrefs(fragment)
			if err != nil {
				problems.add(p.Source, field, "parse prose: %v", err)
				continue
			}
			for _, href := range hrefs {
				target, ok := linkcheck.Internal(base, string(p.Route), href)
				if !ok || extra[target] {
					continue
				}
				if _, isAsset := linkcheck.Asset(target); isAsset {
					if opts.Assets != nil && !linkcheck.AssetExists(opts.Assets, target) {
						problems.add(p.Source, field, "link %q points at a missing asset", href)
					}
					continue
				}
				route, err := ParseRoute(target)
				if err != nil || !site.Has(route) || string(route) != target {
					problems.add(p.Source, field, "link %q does not resolve to a page", href)
				}
			}
		}
	}
	return problems
}

func checkMeta(p *Page, problems *issues) {
	title := strings.TrimSpace(p.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		problems.add(p.Source, "title", "is empty")
	case n > MaxTitleLength:
		problems.add(p.Source, "title", "is %d characters, limit %d", n, MaxTitleLength)
	}
	desc := strings.TrimSpace(p.Description)
	switch n := utf8.RuneCountInString(desc); {
	case n == 0:
		problems.add(p.Source, "description", "is empty")
	case n > MaxDescriptionLength:
		problems.add(p.Source, "description", "is %d characters, limit %d", n, MaxDescriptionLength)
	}
}

func checkAsset(p *Page, assets fs.FS, field, ref string, problems *issues) {
	if _, ok := linkcheck.Asset(ref); !ok {
		return
	}
	if !linkcheck.AssetExists(assets, ref) {
		problems.add(p.Source, field, "%s does not exist", ref)
	}
}
