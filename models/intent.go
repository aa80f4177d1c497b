package models

// QueryType classifies what the user is asking for.
type QueryType string

const (
	QueryProductSearch   QueryType = "product_search"
	QueryPriceComparison QueryType = "price_comparison"
	QueryFlightSearch    QueryType = "flight_search"
)

// SearchParams carries the optional parameters extracted from a query.
// Every field is optional; absent keys decode to empty strings.
type SearchParams struct {
	Category        string `json:"category"`
	Budget          string `json:"budget"`
	SpecificProduct string `json:"specific_product"`
}

// Intent is the structured interpretation of a free-text query, produced
// once by the intent parser and immutable afterwards. TargetWebsites may
// name unsupported sites; those are dropped at compile time, not here.
type Intent struct {
	QueryType      QueryType    `json:"query_type"`
	TargetWebsites []string     `json:"target_websites"`
	SearchParams   SearchParams `json:"search_params"`
}

// SearchTerm resolves the single search term for the query: the specific
// product when given, otherwise the category, otherwise empty.
func (i *Intent) SearchTerm() string {
	if i.SearchParams.SpecificProduct != "" {
		return i.SearchParams.SpecificProduct
	}
	return i.SearchParams.Category
}
