package models

// ListingRecord holds one product entry as extracted from a results page.
// Price is the raw, currency-formatted string; Timestamp is the capture
// wall clock, not a page-supplied value.
type ListingRecord struct {
	Site      string
	Title     string
	Price     string
	Timestamp string
}

// ReportRow is a ListingRecord enriched for report synthesis: the numeric
// price (0 when the raw string does not parse) and whether it falls
// strictly below the average across the record set. Exists only while a
// report is being built.
type ReportRow struct {
	ListingRecord
	NumericPrice float64
	BelowAverage bool
}
