package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mercadolibre-insights/config"
	"mercadolibre-insights/models"
	"mercadolibre-insights/scraper/mercadolibre"
	"mercadolibre-insights/services"
	"mercadolibre-insights/storage"
	"mercadolibre-insights/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.Load(), run).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type runFunc func(ctx context.Context, cfg *config.Config) error

// newRootCmd binds the command-line flags onto cfg; flags override the
// environment.
func newRootCmd(cfg *config.Config, runPipeline runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mercadolibre-insights",
		Short:        "MercadoLibre scraper and marketing insights tool",
		SilenceUsage: true,
		PreRunE: func(*cobra.Command, []string) error {
			if cfg.PagesToScrape < 1 {
				return fmt.Errorf("--pages must be at least 1, got %d", cfg.PagesToScrape)
			}
			if cfg.MaxConcurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1, got %d", cfg.MaxConcurrency)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Keyword, "keyword", cfg.Keyword, "keyword to search on MercadoLibre")
	f.IntVar(&cfg.PagesToScrape, "pages", cfg.PagesToScrape, "number of search result pages to scrape")
	f.StringVar(&cfg.CSVOutputPath, "output-csv", cfg.CSVOutputPath, "products CSV file")
	f.StringVar(&cfg.JSONOutputPath, "output-json", cfg.JSONOutputPath, "products JSON file")
	f.StringVar(&cfg.InsightsOutputPath, "insights-json", cfg.InsightsOutputPath, "marketing insights JSON file")
	f.IntVar(&cfg.MaxConcurrency, "concurrency", cfg.MaxConcurrency, "number of concurrent product page scrapes")
	f.BoolVar(&cfg.SkipDB, "skip-db", cfg.SkipDB, "do not store results in PostgreSQL")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if cfg.Keyword == "" {
		_ = cmd.MarkFlagRequired("keyword")
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := utils.NewLoggerWithLevel(cfg.LogLevel)

	logger.Info("=== MercadoLibre Scraper starting ===")
	logger.Info("Config — keyword: %q | pages: %d | concurrency: %d | retries: %d",
		cfg.Keyword, cfg.PagesToScrape, cfg.MaxConcurrency, cfg.MaxRetries)

	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: cfg.RetryBaseDelay, Logger: logger}
	var details mercadolibre.DetailFetcher
	browser, err := mercadolibre.NewBrowser(cfg.ChromeBin, cfg.DetailTimeout, retry, logger)
	if err != nil {
		logger.Warn("Headless browser unavailable, detail pages will be skipped: %v", err)
	} else {
		defer browser.Close()
		details = browser
	}

	scraper := mercadolibre.New(cfg, details, logger)
	rawProducts, err := scraper.Scrape(ctx)
	if err != nil {
		if len(rawProducts) == 0 {
			return fmt.Errorf("scrape failed: %w", err)
		}
		logger.Warn("Scrape interrupted, continuing with %d products: %v", len(rawProducts), err)
	}

	cleaner := services.NewCleaner(logger)
	products := cleaner.Clean(rawProducts)
	if len(products) == 0 {
		logger.Error("No product data to analyse. Exiting.")
		return errors.New("no products scraped")
	}

	saveProducts(cfg, products, logger)

	var pgWriter *storage.PostgresWriter
	if !cfg.SkipDB {
		pgWriter, err = storage.NewPostgresWriter(cfg.DSN(), cfg.Keyword)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Make sure Docker is running: docker compose up -d, or pass --skip-db")
		} else {
			defer pgWriter.Close()
			products = storeInDatabase(pgWriter, products, logger)
		}
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(products)

	if err := storage.NewJSONWriter(cfg.InsightsOutputPath).WriteInsights(report); err != nil {
		logger.Error("Insights JSON write failed: %v", err)
	} else {
		logger.Info("Marketing insights saved to %s", cfg.InsightsOutputPath)
	}
	if pgWriter != nil {
		if err := pgWriter.WriteInsights(report); err != nil {
			logger.Error("PostgreSQL insight write failed: %v", err)
		} else {
			logger.Info("Insight report stored in PostgreSQL (run %s)", pgWriter.RunID())
		}
	}

	services.NewPrinter(os.Stdout, !color.NoColor).Print(report)

	fmt.Printf("  Done. Products → %s, %s | Insights → %s\n\n",
		cfg.CSVOutputPath, cfg.JSONOutputPath, cfg.InsightsOutputPath)
	return nil
}

func saveProducts(cfg *config.Config, products []*models.ProductRecord, logger *utils.Logger) {
	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		if err := csvWriter.WriteProducts(products); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Products saved to %s", cfg.CSVOutputPath)
		}
		if err := csvWriter.Close(); err != nil {
			logger.Error("CSV close failed: %v", err)
		}
	}

	if err := storage.NewJSONWriter(cfg.JSONOutputPath).WriteProducts(products); err != nil {
		logger.Error("JSON write failed: %v", err)
	} else {
		logger.Info("Products saved to %s", cfg.JSONOutputPath)
	}
}

// storeInDatabase writes the products and reads them back for analysis,
// falling back to the in-memory products if the read fails.
func storeInDatabase(pw *storage.PostgresWriter, products []*models.ProductRecord, logger *utils.Logger) []*models.ProductRecord {
	if err := pw.WriteProducts(products); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return products
	}
	logger.Info("Products stored in PostgreSQL (table: products)")

	stored, err := pw.FetchAll()
	if err != nil || len(stored) == 0 {
		logger.Error("Failed to fetch products from DB for insights: %v", err)
		return products
	}
	return stored
}
