// Package services holds the query-understanding layer: turning raw user
// text into a structured intent via the language-model backend.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shopquery/llm"
	"shopquery/models"
	"shopquery/utils"
)

const intentPrompt = `Analyze this user query: %q
Return a JSON object with:
- query_type (product_search, price_comparison, flight_search)
- target_websites (list of sites)
- search_params (dict with category, budget, specific_product, etc.)
Ensure the response is a valid JSON string.
Example response:
{
    "query_type": "product_search",
    "target_websites": ["amazon", "flipkart"],
    "search_params": {"category": "trimmers", "budget": "₹1000", "specific_product": null}
}`

// IntentParser turns a free-text query into an Intent using the LLM
// backend, retrying with exponential backoff on malformed or empty
// responses.
type IntentParser struct {
	client llm.Client
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewIntentParser creates a parser with the given retry budget and base
// delay.
func NewIntentParser(client llm.Client, maxRetries int, baseDelay time.Duration, logger *utils.Logger) *IntentParser {
	return &IntentParser{
		client: client,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   baseDelay,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Parse produces the Intent for a query. It fails only once the retry
// budget is exhausted, carrying the last attempt's error.
func (p *IntentParser) Parse(ctx context.Context, query string) (*models.Intent, error) {
	p.logger.Info("[parser] Parsing query: %s", query)
	prompt := fmt.Sprintf(intentPrompt, query)

	var intent models.Intent
	err := p.retry.Do("parse-intent", func() error {
		content, err := p.client.Complete(ctx, prompt)
		if err != nil {
			return err
		}

		content = stripFences(content)
		if strings.TrimSpace(content) == "" {
			return fmt.Errorf("empty response from backend")
		}

		var parsed models.Intent
		if err := json.Unmarshal([]byte(content), &parsed); err != nil {
			return fmt.Errorf("invalid intent JSON: %w", err)
		}

		intent = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	p.logger.Info("[parser] Query parsed — type: %s, sites: %v", intent.QueryType, intent.TargetWebsites)
	return &intent, nil
}

// stripFences removes a wrapping markdown code fence, which some backends
// emit around JSON even when asked not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
