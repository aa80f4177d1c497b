// Package processor sequences the full pipeline for one query: parse
// intent, compile workflows, execute and extract per site, persist, and
// synthesize the report.
package processor

import (
	"context"
	"fmt"

	"shopquery/browser"
	"shopquery/models"
	"shopquery/report"
	"shopquery/scraper"
	"shopquery/services"
	"shopquery/storage"
	"shopquery/utils"
	"shopquery/workflow"
)

// Processor owns the end-to-end run of a single query. The browser
// session is created per call and torn down on every exit path; nothing
// but the read-only site registry survives across queries.
type Processor struct {
	parser    *services.IntentParser
	compiler  *workflow.Compiler
	executor  *scraper.Executor
	extractor *scraper.Extractor
	reports   *report.Builder
	stores    []storage.RecordWriter
	launch    func() (browser.Launcher, error)
	logger    *utils.Logger
}

// New wires a Processor. launch creates the browser session for one run;
// stores may be empty.
func New(
	parser *services.IntentParser,
	compiler *workflow.Compiler,
	executor *scraper.Executor,
	extractor *scraper.Extractor,
	reports *report.Builder,
	stores []storage.RecordWriter,
	launch func() (browser.Launcher, error),
	logger *utils.Logger,
) *Processor {
	return &Processor{
		parser:    parser,
		compiler:  compiler,
		executor:  executor,
		extractor: extractor,
		reports:   reports,
		stores:    stores,
		launch:    launch,
		logger:    logger,
	}
}

// Process runs the pipeline and maps every outcome to one of three
// results: a report path, an explicit empty, or an error description.
// It never panics outward.
func (p *Processor) Process(ctx context.Context, query string) (res models.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("[processor] Panic while processing %q: %v", query, r)
			res = models.Failure(fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	p.logger.Info("[processor] Starting query processing: %s", query)

	intent, err := p.parser.Parse(ctx, query)
	if err != nil {
		p.logger.Error("[processor] Intent parsing failed: %v", err)
		return models.Failure(err)
	}

	workflows := p.compiler.Compile(intent)
	if len(workflows) == 0 {
		p.logger.Warn("[processor] No supported sites requested for query: %s", query)
		return models.Empty()
	}

	records, err := p.scrapeAll(workflows)
	if err != nil {
		p.logger.Error("[processor] Browser stage failed: %v", err)
		return models.Failure(err)
	}

	p.persist(query, records)

	if len(records) == 0 {
		p.logger.Warn("[processor] No results found for query: %s", query)
		return models.Empty()
	}

	path, err := p.reports.Build(records, query)
	if err != nil {
		p.logger.Error("[processor] Report generation failed: %v", err)
		return models.Failure(err)
	}

	p.logger.Info("[processor] Query processing completed: %s", path)
	return models.Success(path)
}

// scrapeAll runs every workflow against one shared page, sequentially and
// in request order, accumulating records. Per-action and per-site
// failures degrade to fewer records; only a failed browser launch errors.
func (p *Processor) scrapeAll(workflows []workflow.SiteWorkflow) ([]models.ListingRecord, error) {
	session, err := p.launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			p.logger.Warn("[processor] Browser teardown: %v", err)
		}
	}()

	page, err := session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	var records []models.ListingRecord
	for _, wf := range workflows {
		p.logger.Info("[processor] Scraping site: %s", wf.Site)
		p.executor.Run(page, wf.Steps)
		records = append(records, p.extractor.Extract(page, wf.Site)...)
	}
	return records, nil
}

// persist hands the records to every configured store; failures are
// logged, never fatal.
func (p *Processor) persist(query string, records []models.ListingRecord) {
	if len(records) == 0 {
		return
	}
	for _, store := range p.stores {
		if err := store.Write(query, records); err != nil {
			p.logger.Warn("[processor] Record store write failed: %v", err)
		}
	}
}
