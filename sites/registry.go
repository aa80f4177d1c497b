// Package sites holds the static registry of supported retail sites.
// Adding a site is a data change here, not a code change elsewhere:
// selectors and wait policy are part of the entry, and the scraper and
// compiler are driven entirely by registry data.
package sites

import (
	"strings"
	"time"
)

// Site describes one supported retail site: where to search and how to
// pull listing fields out of its results page.
type Site struct {
	Key         string
	DisplayName string
	BaseURL     string

	// SearchPath is appended to BaseURL with the url-encoded term.
	SearchPath string

	// SearchInput is the selector of the site's search box, used only by
	// budget refinement.
	SearchInput string

	// BudgetRefine enables typing "<term> under <budget>" into the search
	// box after navigation. Only Flipkart's search understands inline
	// budget phrases; no other entry sets this.
	BudgetRefine bool

	// Extraction selectors: listing containers on the results page and
	// the title/price elements inside each container.
	ItemSelector  string
	TitleSelector string
	PriceSelector string

	// ContainerWait bounds an explicit wait for the first container to
	// appear before extraction. Zero means no wait: content is assumed
	// present after the navigate/scroll/wait steps.
	ContainerWait time.Duration
}

var registry = map[string]Site{
	"amazon": {
		Key:           "amazon",
		DisplayName:   "Amazon",
		BaseURL:       "https://www.amazon.com",
		SearchPath:    "/s?k=",
		SearchInput:   "input[name='k']",
		ItemSelector:  ".s-result-item",
		TitleSelector: "h2",
		PriceSelector: ".a-price .a-offscreen",
	},
	"flipkart": {
		Key:           "flipkart",
		DisplayName:   "Flipkart",
		BaseURL:       "https://www.flipkart.com",
		SearchPath:    "/s?k=",
		SearchInput:   "input[name='q']",
		BudgetRefine:  true,
		ItemSelector:  "div._1AtVbE",
		TitleSelector: "a.s1Q9rs",
		PriceSelector: "div._30jeq3",
		ContainerWait: 10 * time.Second,
	},
}

// Lookup resolves a site key (case-insensitive) against the registry.
func Lookup(key string) (Site, bool) {
	s, ok := registry[strings.ToLower(strings.TrimSpace(key))]
	return s, ok
}

// Keys returns the supported site keys. The returned slice is a copy.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	return keys
}
