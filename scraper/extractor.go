package scraper

import (
	"fmt"
	"strings"
	"time"

	"shopquery/browser"
	"shopquery/models"
	"shopquery/sites"
	"shopquery/utils"
)

const timestampLayout = "2006-01-02 15:04:05"

// Extractor pulls a bounded number of listing records from the current
// page state using the site's registry selectors. It never fails: any
// extraction error is logged and an empty slice returned.
type Extractor struct {
	maxItems int
	logger   *utils.Logger
}

// NewExtractor creates an Extractor capped at maxItems records per site.
func NewExtractor(maxItems int, logger *utils.Logger) *Extractor {
	return &Extractor{maxItems: maxItems, logger: logger}
}

type card struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// Extract reads listing cards from the page for the given site key.
// Missing title or price on an individual item yields "N/A" rather than
// dropping the item; the timestamp is the extraction wall clock.
func (e *Extractor) Extract(page browser.Page, siteKey string) []models.ListingRecord {
	site, ok := sites.Lookup(siteKey)
	if !ok {
		e.logger.Warn("[extractor] Unknown site: %s", siteKey)
		return nil
	}

	if site.ContainerWait > 0 {
		if err := page.WaitVisible(site.ItemSelector, site.ContainerWait); err != nil {
			e.logger.Warn("[extractor] %s: no listing container appeared within %v: %v",
				site.Key, site.ContainerWait, err)
			return nil
		}
	}

	var cards []card
	if err := page.EvaluateInto(cardScript(site, e.maxItems), &cards); err != nil {
		e.logger.Error("[extractor] %s: card extraction failed: %v", site.Key, err)
		return nil
	}
	if len(cards) > e.maxItems {
		cards = cards[:e.maxItems]
	}

	now := time.Now().Format(timestampLayout)
	records := make([]models.ListingRecord, 0, len(cards))
	for _, c := range cards {
		records = append(records, models.ListingRecord{
			Site:      site.DisplayName,
			Title:     orNA(c.Title),
			Price:     orNA(c.Price),
			Timestamp: now,
		})
	}

	e.logger.Info("[extractor] %s: extracted %d listing(s)", site.Key, len(records))
	return records
}

// cardScript builds the in-page collection script from the site's
// selectors: walk the listing containers, read title and price from each,
// stop at the cap.
func cardScript(site sites.Site, limit int) string {
	return fmt.Sprintf(`
		(function() {
			var results = [];
			var items = document.querySelectorAll(%q);
			for (var i = 0; i < items.length && results.length < %d; i++) {
				var titleEl = items[i].querySelector(%q);
				var priceEl = items[i].querySelector(%q);
				results.push({
					title: titleEl ? titleEl.innerText : '',
					price: priceEl ? priceEl.innerText : ''
				});
			}
			return results;
		})()
	`, site.ItemSelector, limit, site.TitleSelector, site.PriceSelector)
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	return s
}
