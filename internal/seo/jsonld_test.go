package seo

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testBusiness() Business {
	return Business{
		Name:         "Test Builders",
		URL:          "https://example.com",
		Logo:         "https://example.com/assets/img/logo.svg",
		Telephone:    "+1-954-555-0100",
		Email:        "office@example.com",
		PriceRange:   "$$",
		FoundingYear: 2001,
		Address: PostalAddress{
			Street:     "1 Main St",
			Locality:   "Miami",
			Region:     "FL",
			PostalCode: "33101",
			Country:    "US",
		},
		Latitude:     25.77,
		Longitude:    -80.19,
		OpeningHours: []string{"Mo-Fr 08:00-17:00"},
		AreasServed:  []string{"Miami", ""},
	}
}

func TestFAQPageKeepsOrderAndText(t *testing.T) {
	t.Parallel()

	doc := FAQPage([]QA{{Question: "Q1", Answer: "A1"}, {Question: "Q2 <b>", Answer: "A2 & more"}})
	require.NoError(t, Validate(doc))

	main := doc["mainEntity"].([]map[string]any)
	require.Len(t, main, 2)
	require.Equal(t, "Q1", main[0]["name"])
	require.Equal(t, "A1", main[0]["acceptedAnswer"].(map[string]any)["text"])
	require.Equal(t, "Q2 <b>", main[1]["name"])
}

func TestFAQPageRejectsEmpty(t *testing.T) {
	t.Parallel()

	var serr *SchemaError
	require.ErrorAs(t, Validate(FAQPage(nil)), &serr)
	require.Equal(t, "FAQPage", serr.Type)
}

func TestBreadcrumbListPositions(t *testing.T) {
	t.Parallel()

	doc := BreadcrumbList([]BreadcrumbItem{
		{Name: "Home", Item: "https://example.com/"},
		{Name: "Services", Item: "https://example.com/services/"},
	})
	require.NoError(t, Validate(doc))
	el := doc["itemListElement"].([]map[string]any)
	require.Equal(t, 1, el[0]["position"])
	require.Equal(t, 2, el[1]["position"])

	bad := BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "/"}})
	require.Error(t, Validate(bad))
}

func TestLocalBusinessAndService(t *testing.T) {
	t.Parallel()

	b := testBusiness()
	lb := LocalBusiness(b)
	require.NoError(t, Validate(lb))
	require.Equal(t, "2001", lb["foundingDate"])
	require.Len(t, lb["areaServed"], 1)

	svc := Service(ServiceOffer{
		Name:        "Balcony Restoration",
		URL:         "https://example.com/services/balcony/",
		PriceRange:  "$2,500 - $9,000",
		AreasServed: []string{"Miami"},
	}, b)
	require.NoError(t, Validate(svc))
	require.Equal(t, "https://example.com#business", svc["provider"].(map[string]any)["@id"])

	missing := LocalBusiness(Business{Name: "No Phone"})
	require.Error(t, Validate(missing))
}

func TestArticleDefaultsModifiedToPublished(t *testing.T) {
	t.Parallel()

	doc := Article(ArticleInfo{
		Headline:  "Balcony safety",
		URL:       "https://example.com/balcony-safety/",
		Author:    "Desk",
		Published: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	}, testBusiness())
	require.NoError(t, Validate(doc))
	require.Equal(t, "2025-03-04", doc["datePublished"])
	require.Equal(t, "2025-03-04", doc["dateModified"])

	undated := Article(ArticleInfo{Headline: "x", Author: "y"}, testBusiness())
	require.Error(t, Validate(undated))
}

func TestOrganizationAndWebSite(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(Organization("Test", "https://example.com", "https://example.com/logo.svg", []string{"https://facebook.com/test"})))
	require.NoError(t, Validate(WebSite("Test", "https://example.com/")))
	require.Error(t, Validate(WebSite("Test", "")))
}

func TestValidateUnknownType(t *testing.T) {
	t.Parallel()

	err := Validate(map[string]any{"@type": "Product"})
	require.True(t, errors.Is(err, ErrUnknownType))
}

func TestScriptTagEscapesMarkup(t *testing.T) {
	t.Parallel()

	tag := string(ScriptTag(FAQPage([]QA{{Question: "</script><b>", Answer: "a & b"}})))
	require.True(t, strings.HasPrefix(tag, `<script type="application/ld+json">`))
	require.Equal(t, 1, strings.Count(tag, "</script>"))

	body := strings.TrimSuffix(strings.TrimPrefix(tag, `<script type="application/ld+json">`), `</script>`)
	require.NoError(t, ValidateScript(body))
}

func TestNewMeta(t *testing.T) {
	t.Parallel()

	m := NewMeta("T", "D", "https://example.com/a/", "", "Site", "", false)
	require.Equal(t, "website", m.OG.Type)
	require.Equal(t, "summary", m.Twitter.Card)
	require.Equal(t, "index, follow", m.Robots)

	m = NewMeta("T", "D", "https://example.com/a/", "https://example.com/i.svg", "Site", "article", true)
	require.Equal(t, "summary_large_image", m.Twitter.Card)
	require.Equal(t, "noindex, follow", m.Robots)

	require.Equal(t, "https://example.com/assets/x.svg", Absolute("https://example.com/", "/assets/x.svg"))
	require.Equal(t, "https://cdn.example.com/x.svg", Absolute("https://example.com", "https://cdn.example.com/x.svg"))
	require.Equal(t, "", Absolute("https://example.com", ""))
}
