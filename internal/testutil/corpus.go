package testutil

import (
	"testing"
	"testing/fstest"

	"github.com/milburnr/fcs-site-sub010/internal/content"
)

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

// Corpus is a small but complete content tree: a home page, a service index with
// one service, a city page, a blog with one article and a contact page.
func Corpus() fstest.MapFS {
	return fstest.MapFS{
		"site.yaml": file(`name: Test Builders
tagline: Tests built to code
telephone: "+1-305-555-0100"
email: hi@example.com
license: CGC000001
logo: /assets/img/logo.svg
address:
  street: 1 Main St
  locality: Miami
  region: FL
  postal_code: "33101"
geo:
  latitude: 25.77
  longitude: -80.19
areas_served: [Miami]
default_author: Test Desk
`),
		"pages/index.md": file(`---
title: Test Builders | Coastal Repair
description: Coastal repair for tests.
hero:
  heading: Coastal repair
  cta_label: See services
  cta_href: /services/
---
Welcome. Read about [decks](/services/decks/).
`),
		"pages/services/index.md": file(`---
kind: index
label: Services
title: Services | Test Builders
description: Every service we offer.
---
`),
		"pages/services/decks.md": file(`---
kind: service
title: Deck Repair | Test Builders
description: Deck repair in Miami.
service:
  name: Deck Repair
  price_range: "$1,000 - $5,000"
features:
  - title: Licensed
    text: Fully licensed crews.
costs:
  - label: Board swap
    cost_range: "$10 - $20"
    unit: per board
  - label: Full resurfacing
    cost_range: "$4,000+"
cost_note: Prices vary.
steps:
  - title: Inspect
    text: We look first.
faq:
  - question: Q1
    answer: A1
  - question: Do you pull permits & inspections?
    answer: Yes, every <job>.
links:
  - href: /miami/decks/
cta:
  heading: Ready?
  label: Contact us
  href: /contact/
---
Decks rot. See the [guide](/blog/deck-guide/).
`),
		"pages/miami/index.md": file(`---
kind: index
label: Miami
title: Miami | Test Builders
description: Miami services.
---
`),
		"pages/miami/decks.md": file(`---
kind: city-service
title: Miami Deck Repair | Test Builders
description: Deck repair in Miami.
city: Miami
service:
  name: Deck Repair
faq:
  - question: Do you serve Brickell?
    answer: Yes.
---
`),
		"pages/blog/index.md": file(`---
kind: index
label: Blog
title: Blog | Test Builders
description: News and guides.
---
`),
		"pages/blog/deck-guide.md": file(`---
kind: article
title: Deck Guide | Test Builders
description: How to care for a deck.
article:
  published: 2025-04-01
---
Keep it dry.
`),
		"pages/contact.md": file(`---
title: Contact | Test Builders
description: Call or email us.
---
`),
	}
}

// Site loads Corpus and fails the test on error.
func Site(t testing.TB) *content.Site {
	t.Helper()
	site, err := content.Load(Corpus())
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	return site
}

// Assets is an asset tree holding what Corpus references.
func Assets() fstest.MapFS {
	return fstest.MapFS{
		"img/logo.svg": file("<svg xmlns=\"http://www.w3.org/2000/svg\"/>"),
		"css/site.css": file("body{margin:0}"),
	}
}
