package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestValidCostRange(t *testing.T) {
	t.Parallel()

	valid := []string{"$45", "$45 - $85", "$1,100 - $2,400", "$350+", "$450/day", "$12.50 - $18.75", "$9/sq ft"}
	for _, v := range valid {
		require.True(t, ValidCostRange(v), v)
	}
	invalid := []string{"", "45 - 85", "$45-$85", "$1,00", "about $50", "$45 - 85", "$50 per day"}
	for _, v := range invalid {
		require.False(t, ValidCostRange(v), v)
	}
}

func TestCheckReportsAuthoringProblems(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/services/roofs.md"] = page(`kind: service
title: Roof Repair and Replacement for Coastal Homes and Condos | Test Builders
description: ""
hero:
  image: /assets/img/missing.svg
service:
  name: Roof Repair
  price_range: call us
costs:
  - label: Tear-off
    cost_range: 4 dollars
faq:
  - question: Is it loud?
    answer: "  "
`, "See [gutters](/services/gutters/) and [decks](/services/decks/).")
	site, err := Load(fsys)
	require.NoError(t, err)

	assets := fstest.MapFS{"img/present.svg": {Data: []byte("<svg/>")}}
	got := (&ValidationError{Issues: Check(site, CheckOptions{Assets: assets})}).Strings()
	require.Equal(t, []string{
		"pages/services/roofs.md: body: link \"/services/gutters/\" does not resolve to a page",
		`pages/services/roofs.md: costs[0]: cost range "4 dollars" does not match "$X - $Y" or "$X/unit"`,
		"pages/services/roofs.md: description: is empty",
		"pages/services/roofs.md: faq[0]: answer is empty",
		"pages/services/roofs.md: hero.image: /assets/img/missing.svg does not exist",
		`pages/services/roofs.md: service.price_range: "call us" is not a price range`,
		"pages/services/roofs.md: title: is 72 characters, limit 60",
	}, got)
}

func TestCheckPassesCleanSite(t *testing.T) {
	t.Parallel()

	site, err := Load(minimalFS())
	require.NoError(t, err)
	require.Empty(t, Check(site, CheckOptions{}))
}

func TestCheckArticleAndCityRequirements(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/services/miami.md"] = page("kind: city-service\ntitle: Miami\ndescription: m\nservice:\n  name: Decks")
	fsys["pages/blog/post.md"] = page("kind: article\nroute: /post-one/\nparent: /services/\ntitle: Post\ndescription: p\narticle:\n  published: 2025-03-01\n  modified: 2025-01-01")
	fsys["pages/blog/draft.md"] = page("kind: article\nparent: /services/\ntitle: Draft\ndescription: d")

	site, err := Load(fsys)
	require.NoError(t, err)
	got := (&ValidationError{Issues: Check(site, CheckOptions{})}).Strings()
	require.Equal(t, []string{
		"pages/blog/draft.md: article.published: articles need a publish date",
		"pages/blog/post.md: article.modified: modified date precedes publish date",
		"pages/services/miami.md: city: required for city-service pages",
	}, got)
}

func TestCheckResolvesRelativeSameOriginAndAssetLinks(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/services/roofs.md"] = page("kind: service\ntitle: Roof Repair | Test\ndescription: Roof repair\nservice:\n  name: Roof Repair",
		"See [decks](../decks/), [gutters](gutters/), [home](https://example.com/), "+
			"[decks again](https://EXAMPLE.com/services/decks/#faq), [gone](https://example.com/nope/), "+
			"[elsewhere](https://other.example.org/x/), [call](tel:+13055550100), "+
			"[spec sheet](/assets/img/present.svg) and [brochure](/assets/docs/missing.pdf).")
	site, err := Load(fsys)
	require.NoError(t, err)

	assets := fstest.MapFS{"img/present.svg": {Data: []byte("<svg/>")}}
	got := (&ValidationError{Issues: Check(site, CheckOptions{Assets: assets, BaseURL: "https://example.com"})}).Strings()
	require.Equal(t, []string{
		`pages/services/roofs.md: body: link "/assets/docs/missing.pdf" points at a missing asset`,
		`pages/services/roofs.md: body: link "gutters/" does not resolve to a page`,
		`pages/services/roofs.md: body: link "https://example.com/nope/" does not resolve to a page`,
	}, got)
}
