package content

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

const testSiteYAML = `name: Test Builders
default_author: Test Desk
`

func page(front string, body ...string) *fstest.MapFile {
	data := "---\n" + front + "\n---\n"
	for _, b := range body {
		data += b
	}
	return &fstest.MapFile{Data: []byte(data)}
}

func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		"site.yaml":               {Data: []byte(testSiteYAML)},
		"pages/index.md":          page("title: Home | Test\ndescription: Home page"),
		"pages/services/index.md": page("kind: index\nlabel: Services\ntitle: Services | Test\ndescription: All services"),
		"pages/services/decks.md": page(`kind: service
order: 2
title: Deck Repair | Test
description: Deck repair
service:
  name: Deck Repair
  price_range: "$1,000 - $5,000"
faq:
  - question: Q1
    answer: A1
links:
  - href: /services/roofs
`),
		"pages/services/roofs.md": page(`kind: service
order: 1
title: Roof Repair | Test
description: Roof repair
service:
  name: Roof Repair
`),
		"pages/blog/post.md": page(`kind: article
route: /post-one/
parent: /services/
title: Post One
description: A post
article:
  published: 2025-02-01
`, "Body with a [link](/services/decks/)."),
	}
}

func TestLoadBuildsRegistry(t *testing.T) {
	t.Parallel()

	site, err := Load(minimalFS())
	require.NoError(t, err)
	require.Equal(t, "Test Builders", site.Business.Name)
	require.Equal(t, []Route{"/", "/post-one/", "/services/", "/services/decks/", "/services/roofs/"}, site.Routes())
	require.NotEmpty(t, site.Version())

	home, err := site.Page(Root)
	require.NoError(t, err)
	require.Equal(t, KindHome, home.Kind)
	require.Equal(t, "Home", home.Label)

	decks, err := site.Page("/services/decks/")
	require.NoError(t, err)
	require.Equal(t, Route("/services/"), decks.Parent)
	require.Equal(t, "Deck Repair", decks.Label)
	require.Equal(t, []LinkEntry{{Href: "/services/roofs/", Label: "Roof Repair"}}, decks.Links)
	require.Equal(t, []FAQEntry{{Question: "Q1", Answer: "A1"}}, decks.FAQ)

	post, err := site.Page("/post-one/")
	require.NoError(t, err)
	require.Equal(t, KindArticle, post.Kind)
	require.Equal(t, "Test Desk", post.Article.Author)
	require.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), post.Article.Published)
	require.Contains(t, string(post.BodyHTML), `<a href="/services/decks/">link</a>`)
}

func TestLoadChildrenOrdering(t *testing.T) {
	t.Parallel()

	site, err := Load(minimalFS())
	require.NoError(t, err)

	var got []Route
	for _, p := range site.Children("/services/") {
		got = append(got, p.Route)
	}
	require.Equal(t, []Route{"/services/roofs/", "/services/decks/", "/post-one/"}, got)
}

func TestChildrenOrderingMixesArticlesAndPages(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"site.yaml":             {Data: []byte(testSiteYAML)},
		"pages/index.md":        page("title: Home | Test\ndescription: Home page"),
		"pages/news/index.md":   page("kind: index\ntitle: News | Test\ndescription: News"),
		"pages/news/newer.md":   page("kind: article\norder: 5\ntitle: Newer\ndescription: d\narticle:\n  published: 2025-03-01"),
		"pages/news/older.md":   page("kind: article\norder: 0\ntitle: Older\ndescription: d\narticle:\n  published: 2025-01-01"),
		"pages/news/about.md":   page("order: 1\ntitle: About the desk\ndescription: d"),
		"pages/news/archive.md": page("order: 1\ntitle: Archive\ndescription: d"),
	}
	site, err := Load(fsys)
	require.NoError(t, err)

	var got []Route
	for _, p := range site.Children("/news/") {
		got = append(got, p.Route)
	}
	require.Equal(t, []Route{"/news/about/", "/news/archive/", "/news/newer/", "/news/older/"}, got)
}

func TestLoadNormalizesFAQLineBreaks(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/services/roofs.md"] = page(`kind: service
title: Roof Repair | Test
description: Roof repair
service:
  name: Roof Repair
faq:
  - question: "Is it\r\nsafe?"
    answer: "Line one\r\nline two\rline three"
`)
	site, err := Load(fsys)
	require.NoError(t, err)
	p, err := site.Page("/services/roofs/")
	require.NoError(t, err)
	require.Equal(t, FAQEntry{Question: "Is it\nsafe?", Answer: "Line one\nline two\nline three"}, p.FAQ[0])
}

func TestLoadBreadcrumbsRootFirst(t *testing.T) {
	t.Parallel()

	site, err := Load(minimalFS())
	require.NoError(t, err)

	crumbs, err := site.Breadcrumbs("/services/decks/")
	require.NoError(t, err)
	require.Equal(t, []BreadcrumbItem{
		{Name: "Home", Href: "/"},
		{Name: "Services", Href: "/services/"},
		{Name: "Deck Repair", Href: "/services/decks/"},
	}, crumbs)

	_, err = site.Breadcrumbs("/missing/")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRejectsUnknownLinkTargets(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/services/roofs.md"] = page(`kind: service
title: Roof Repair | Test
description: Roof repair
links:
  - href: /services/gutters/
cta:
  href: /quote/
`)
	_, err := Load(fsys)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Equal(t, []string{
		"pages/services/roofs.md: cta.href: /quote/ is not a page",
		"pages/services/roofs.md: links[0]: /services/gutters/ is not a page",
	}, verr.Strings())
}

func TestLoadDetectsParentCycle(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/a.md"] = page("parent: /b/\ntitle: A\ndescription: a")
	fsys["pages/b.md"] = page("parent: /a/\ntitle: B\ndescription: b")

	_, err := Load(fsys)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 2)
	for _, issue := range verr.Issues {
		require.Equal(t, "parent", issue.Field)
		require.Contains(t, issue.Message, "parent cycle")
	}
}

func TestLoadRejectsDuplicateRoutesAndMissingParents(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/other.md"] = page("route: /services/decks\ntitle: Dup\ndescription: dup")
	fsys["pages/orphan.md"] = page("parent: /nowhere/\ntitle: Orphan\ndescription: orphan")

	_, err := Load(fsys)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	lines := verr.Strings()
	require.Contains(t, lines, "pages/orphan.md: parent: /nowhere/ is not a page")
	require.Contains(t, lines, "pages/services/decks.md: route: /services/decks/ is already defined by pages/other.md")
}

func TestLoadRejectsMissingFrontMatterAndBadKind(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/plain.md"] = &fstest.MapFile{Data: []byte("# no front matter")}
	fsys["pages/weird.md"] = page("kind: gallery\ntitle: W\ndescription: w")

	_, err := Load(fsys)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.ElementsMatch(t, []string{
		"pages/plain.md: missing front matter",
		`pages/weird.md: unknown kind "gallery"`,
	}, verr.Strings())
}

func TestLoadRequiresSiteFile(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	delete(fsys, "site.yaml")
	_, err := Load(fsys)
	require.Error(t, err)
	require.Contains(t, err.Error(), "site.yaml")
}

func TestSiteLookupCanonicalisesTrailingSlash(t *testing.T) {
	t.Parallel()

	site, err := Load(minimalFS())
	require.NoError(t, err)

	p, route, redirect := site.Lookup("/services/decks")
	require.NotNil(t, p)
	require.Equal(t, Route("/services/decks/"), route)
	require.True(t, redirect)

	_, _, redirect = site.Lookup("/services/decks/")
	require.False(t, redirect)

	p, _, _ = site.Lookup("/services/unknown/")
	require.Nil(t, p)
}

func TestVersionChangesWithContent(t *testing.T) {
	t.Parallel()

	a, err := Load(minimalFS())
	require.NoError(t, err)

	fsys := minimalFS()
	fsys["pages/index.md"] = page("title: Home v2 | Test\ndescription: Home page")
	b, err := Load(fsys)
	require.NoError(t, err)
	require.NotEqual(t, a.Version(), b.Version())
}

func TestLabelFallsBackToSlug(t *testing.T) {
	t.Parallel()

	fsys := minimalFS()
	fsys["pages/fort-lauderdale.md"] = page("description: x")
	site, err := Load(fsys)
	require.NoError(t, err)
	p, err := site.Page("/fort-lauderdale/")
	require.NoError(t, err)
	require.Equal(t, "Fort Lauderdale", p.Label)
}
