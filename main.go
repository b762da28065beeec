package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"drapequote/collections"
	"drapequote/config"
	"drapequote/handlers"
	"drapequote/logging"
	"drapequote/services"
	"drapequote/tabular"
)

func main() {
	cfg := config.Load()
	logger := logging.Must(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Development(),
		Fields:      map[string]string{"service": "drapequote"},
	})
	defer logger.Sync()

	backend, closeBackend, err := openBackend(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("startup: open tabular backend", zap.String("backend", cfg.TabularBackend), zap.Error(err))
	}
	defer closeBackend()

	numbering := services.Numbering{Prefix: cfg.QuotationPrefix, Floor: cfg.QuotationFloor}
	store := services.NewQuoteStore(backend, numbering, logger)

	app := pocketbase.New()
	app.RootCmd.AddCommand(
		newSheetsInitCmd(backend, logger),
		newQuoteNextCmd(store),
		newCatalogImportCmd(store),
	)

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(se.App, logger); err != nil {
			return fmt.Errorf("setup collections: %w", err)
		}
		if err := collections.Seed(se.App, logger); err != nil {
			logger.Warn("startup: seed data failed", zap.Error(err))
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))
		se.Router.BindFunc(handlers.RequestLoggerMiddleware(logger))
		registerRoutes(se, store, logger)
		return se.Next()
	})

	if err := app.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// registerRoutes binds the quotation API, the downloads and the preview.
func registerRoutes(se *core.ServeEvent, store *services.QuoteStore, logger *zap.Logger) {
	// ── Catalogue ───────────────────────────────────────────
	se.Router.GET("/api/catalog", handlers.HandleCatalog(store))
	se.Router.GET("/api/catalog/template", handlers.HandleCatalogTemplate(logger))
	se.Router.POST("/api/catalog/import", handlers.HandleCatalogImport(store, logger))
	se.Router.POST("/api/catalog/import/errors", handlers.HandleCatalogErrorReport(logger))
	se.Router.POST("/api/products", handlers.HandleAddProduct(store, logger))
	se.Router.POST("/api/customers", handlers.HandleAddCustomer(store, logger))

	// ── Quotations ──────────────────────────────────────────
	se.Router.POST("/api/quotes/calculate", handlers.HandleCalculate())
	se.Router.GET("/api/quotes/next-number", handlers.HandleNextNumber(store))
	se.Router.GET("/api/quotes/export", handlers.HandleQuoteRegister(store, logger))
	se.Router.GET("/api/quotes", handlers.HandleSearchQuotes(store))
	se.Router.POST("/api/quotes", handlers.HandleCreateQuote(store, logger))
	se.Router.GET("/api/quotes/{no}", handlers.HandleGetQuote(store, logger))
	se.Router.PUT("/api/quotes/{no}", handlers.HandleUpdateQuote(store, logger))
	se.Router.DELETE("/api/quotes/{no}", handlers.HandleDeleteQuote(store, logger))

	// ── Documents ───────────────────────────────────────────
	se.Router.GET("/quotes/{no}/pdf", handlers.HandleQuotePDF(store, logger))
	se.Router.GET("/quotes/{no}/xlsx", handlers.HandleQuoteExcel(store, logger))
	se.Router.GET("/quotes/{no}/upi-qr.png", handlers.HandleQuoteUPIQR(store, logger))
	se.Router.GET("/quotes/{no}", handlers.HandleQuotePreview(store, logger))

	// ── Site data ───────────────────────────────────────────
	se.Router.GET("/api/reviews/summary", handlers.HandleReviewSummary(logger))
	se.Router.GET("/api/quote-requests", handlers.HandleListQuoteRequests(logger))
	se.Router.POST("/api/quote-requests", handlers.HandleCreateQuoteRequest(logger))
	se.Router.PATCH("/api/quote-requests/{id}", handlers.HandleUpdateQuoteRequestStatus(logger))
}

// openBackend connects the configured tabular backend. The workbook backend
// gets its sheets and header rows created on open.
func openBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (tabular.Backend, func(), error) {
	switch cfg.TabularBackend {
	case config.BackendGSheets:
		gs, err := tabular.NewGoogleSheets(ctx, cfg.SpreadsheetID, cfg.CredentialsFile, logger)
		if err != nil {
			return nil, nil, err
		}
		return gs, func() {}, nil
	case config.BackendWorkbook, "":
		wb, err := tabular.OpenWorkbook(cfg.WorkbookPath, logger)
		if err != nil {
			return nil, nil, err
		}
		for _, s := range services.Schemas() {
			if err := wb.EnsureSheet(s.Name, s.Columns); err != nil {
				wb.Close()
				return nil, nil, err
			}
		}
		return wb, func() { wb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown tabular backend %q", cfg.TabularBackend)
	}
}
