package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"shopquery/browser"
	"shopquery/config"
	"shopquery/llm"
	"shopquery/models"
	"shopquery/processor"
	"shopquery/report"
	"shopquery/scraper"
	"shopquery/services"
	"shopquery/storage"
	"shopquery/utils"
	"shopquery/workflow"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewFileLogger(cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("=== Shopping Query Processor starting ===")
	logger.Info("Config — provider: %s | listings/site: %d | retries: %d",
		cfg.LLMProvider, cfg.ListingsPerSite, cfg.MaxRetries)

	client, err := llm.New(cfg, logger)
	if err != nil {
		logger.Error("LLM backend setup failed: %v", err)
		os.Exit(1)
	}

	stores, closeStores, err := buildStores(cfg, logger)
	if err != nil {
		logger.Error("Storage setup failed: %v", err)
		os.Exit(1)
	}
	defer closeStores()

	parser := services.NewIntentParser(client, cfg.MaxRetries,
		time.Duration(cfg.RetryBaseDelayMs)*time.Millisecond, logger)

	proc := processor.New(
		parser,
		workflow.NewCompiler(logger),
		scraper.NewExecutor(logger),
		scraper.NewExtractor(cfg.ListingsPerSite, logger),
		report.NewBuilder(cfg.ReportDir, logger),
		stores,
		func() (browser.Launcher, error) { return browser.NewSession(cfg, logger) },
		logger,
	)

	query := readQuery()
	if query == "" {
		logger.Error("No query provided. Usage: shopquery \"Find me laptops under ₹50,000\"")
		os.Exit(1)
	}

	result := proc.Process(context.Background(), query)
	fmt.Println(result.Message())

	if result.Outcome == models.OutcomeError {
		os.Exit(1)
	}
}

// readQuery takes the query from the command line, falling back to an
// interactive prompt.
func readQuery() string {
	if len(os.Args) > 1 {
		return strings.TrimSpace(strings.Join(os.Args[1:], " "))
	}

	fmt.Print("Enter your shopping query: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// buildStores wires the CSV dump and, when enabled, the Postgres record
// store. The returned closer shuts all of them down.
func buildStores(cfg *config.Config, logger *utils.Logger) ([]storage.RecordWriter, func(), error) {
	var stores []storage.RecordWriter

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		return nil, nil, err
	}
	stores = append(stores, csvWriter)

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			_ = csvWriter.Close()
			return nil, nil, err
		}
		stores = append(stores, pgWriter)
		logger.Info("PostgreSQL record store enabled")
	}

	closeAll := func() {
		for _, s := range stores {
			if err := s.Close(); err != nil {
				logger.Warn("Store close failed: %v", err)
			}
		}
	}
	return stores, closeAll, nil
}
