package processor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopquery/browser"
	"shopquery/models"
	"shopquery/report"
	"shopquery/scraper"
	"shopquery/services"
	"shopquery/storage"
	"shopquery/utils"
	"shopquery/workflow"
)

const laptopIntentJSON = `{
	"query_type": "product_search",
	"target_websites": ["amazon", "flipkart"],
	"search_params": {"category": "laptops", "budget": "₹50,000"}
}`

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Complete(_ context.Context, _ string) (string, error) {
	return s.response, s.err
}

// stubPage serves canned listing items to whatever shape the extractor
// asks for, via a JSON round-trip.
type stubPage struct {
	items []map[string]string
}

func (p *stubPage) Navigate(string) error                      { return nil }
func (p *stubPage) ScrollBy(int) error                         { return nil }
func (p *stubPage) Sleep(time.Duration) error                  { return nil }
func (p *stubPage) Fill(string, string) error                  { return nil }
func (p *stubPage) PressKey(string) error                      { return nil }
func (p *stubPage) WaitVisible(string, time.Duration) error    { return nil }
func (p *stubPage) EvaluateInto(_ string, out any) error {
	data, err := json.Marshal(p.items)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

type stubLauncher struct {
	page   *stubPage
	closed bool
}

func (l *stubLauncher) NewPage() (browser.Page, error) { return l.page, nil }
func (l *stubLauncher) Close() error                   { l.closed = true; return nil }

type testHarness struct {
	proc     *Processor
	launcher *stubLauncher
	launches int
}

func newHarness(t *testing.T, llmStub *stubLLM, page *stubPage, stores []storage.RecordWriter) *testHarness {
	t.Helper()
	logger := utils.NewLogger()

	h := &testHarness{launcher: &stubLauncher{page: page}}
	h.proc = New(
		services.NewIntentParser(llmStub, 3, time.Millisecond, logger),
		workflow.NewCompiler(logger),
		scraper.NewExecutor(logger),
		scraper.NewExtractor(5, logger),
		report.NewBuilder(t.TempDir(), logger),
		stores,
		func() (browser.Launcher, error) {
			h.launches++
			return h.launcher, nil
		},
		logger,
	)
	return h
}

func TestProcessEmptyPagesYieldsEmptyResult(t *testing.T) {
	h := newHarness(t, &stubLLM{response: laptopIntentJSON}, &stubPage{}, nil)

	result := h.proc.Process(context.Background(), "Find me laptops under ₹50,000")

	assert.Equal(t, models.OutcomeEmpty, result.Outcome)
	assert.Equal(t, 1, h.launches)
	assert.True(t, h.launcher.closed, "browser must be torn down on the empty path")
}

func TestProcessSuccessGeneratesReport(t *testing.T) {
	page := &stubPage{items: []map[string]string{
		{"title": "Laptop A", "price": "$499"},
		{"title": "Laptop B", "price": "$299"},
	}}
	h := newHarness(t, &stubLLM{response: laptopIntentJSON}, page, nil)

	result := h.proc.Process(context.Background(), "Find me laptops under ₹50,000")

	require.Equal(t, models.OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Message(), result.ReportPath)
	_, err := os.Stat(result.ReportPath)
	assert.NoError(t, err, "report file must exist")
	assert.True(t, h.launcher.closed)
}

func TestProcessParseFailureYieldsError(t *testing.T) {
	h := newHarness(t, &stubLLM{err: errors.New("backend down")}, &stubPage{}, nil)

	result := h.proc.Process(context.Background(), "laptops")

	assert.Equal(t, models.OutcomeError, result.Outcome)
	assert.Zero(t, h.launches, "no browser should launch when parsing fails")
	assert.Contains(t, result.Message(), "Error processing query")
}

func TestProcessUnsupportedSitesOnlyYieldsEmpty(t *testing.T) {
	llmStub := &stubLLM{response: `{
		"query_type": "product_search",
		"target_websites": ["ebay", "walmart"],
		"search_params": {"category": "laptops"}
	}`}
	h := newHarness(t, llmStub, &stubPage{}, nil)

	result := h.proc.Process(context.Background(), "laptops")

	assert.Equal(t, models.OutcomeEmpty, result.Outcome)
	assert.Zero(t, h.launches, "no browser should launch with zero workflows")
}

func TestProcessLaunchFailureYieldsError(t *testing.T) {
	logger := utils.NewLogger()
	proc := New(
		services.NewIntentParser(&stubLLM{response: laptopIntentJSON}, 3, time.Millisecond, logger),
		workflow.NewCompiler(logger),
		scraper.NewExecutor(logger),
		scraper.NewExtractor(5, logger),
		report.NewBuilder(t.TempDir(), logger),
		nil,
		func() (browser.Launcher, error) { return nil, errors.New("chrome not found") },
		logger,
	)

	result := proc.Process(context.Background(), "laptops")
	assert.Equal(t, models.OutcomeError, result.Outcome)
}

type failingStore struct{ writes int }

func (s *failingStore) Write(string, []models.ListingRecord) error {
	s.writes++
	return errors.New("disk full")
}
func (s *failingStore) Close() error { return nil }

func TestProcessStoreFailureIsSoft(t *testing.T) {
	page := &stubPage{items: []map[string]string{{"title": "Laptop A", "price": "$499"}}}
	store := &failingStore{}
	h := newHarness(t, &stubLLM{response: laptopIntentJSON}, page, []storage.RecordWriter{store})

	result := h.proc.Process(context.Background(), "laptops")

	assert.Equal(t, models.OutcomeSuccess, result.Outcome, "a failing store must not fail the query")
	assert.Equal(t, 1, store.writes)
}
