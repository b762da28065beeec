// Package testhelpers provides fixtures for tests that need a PocketBase app
// or a quotation workbook.
package testhelpers

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"drapequote/collections"
	"drapequote/services"
	"drapequote/tabular"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app, zap.NewNop()); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// NewTestWorkbook opens an empty quotation workbook in a temporary directory
// with the Products, Customers and Quotations sheets and their header rows.
func NewTestWorkbook(t *testing.T) *tabular.Workbook {
	t.Helper()

	wb, err := tabular.OpenWorkbook(filepath.Join(t.TempDir(), "quotations.xlsx"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test workbook: %v", err)
	}
	t.Cleanup(func() { wb.Close() })

	for _, s := range services.Schemas() {
		if err := wb.EnsureSheet(s.Name, s.Columns); err != nil {
			t.Fatalf("failed to create sheet %q: %v", s.Name, err)
		}
	}
	return wb
}

// NewTestQuoteStore returns a store over a fresh test workbook.
func NewTestQuoteStore(t *testing.T) (*services.QuoteStore, *tabular.Workbook) {
	t.Helper()

	wb := NewTestWorkbook(t)
	return services.NewQuoteStore(wb, services.DefaultNumbering(), zap.NewNop()), wb
}

// CreateTestSiteSettings saves a site_settings record with the given field
// values and returns it.
func CreateTestSiteSettings(t *testing.T, app core.App, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("site_settings")
	if err != nil {
		t.Fatalf("failed to find site_settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("company_name", "Test Drapes")
	for k, v := range fields {
		record.Set(k, v)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test site settings: %v", err)
	}

	return record
}

// CreateTestQuoteRequest creates an enquiry with the given name and status.
func CreateTestQuoteRequest(t *testing.T, app core.App, name, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_requests")
	if err != nil {
		t.Fatalf("failed to find quote_requests collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("mobile", "9876543210")
	record.Set("city", "Pune")
	record.Set("message", "Curtains for two bedrooms")
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote request: %v", err)
	}

	return record
}

// CreateTestReview creates a review with the given rating.
func CreateTestReview(t *testing.T, app core.App, customerName string, rating int, approved bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("reviews")
	if err != nil {
		t.Fatalf("failed to find reviews collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer_name", customerName)
	record.Set("rating", rating)
	record.Set("comment", "Test review")
	record.Set("approved", approved)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test review: %v", err)
	}

	return record
}

// DropCollection deletes the named collection and its table, so later
// reads and writes against it fail.
func DropCollection(t *testing.T, app core.App, name string) {
	t.Helper()
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		t.Fatalf("find collection %s: %v", name, err)
	}
	if err := app.Delete(col); err != nil {
		t.Fatalf("delete collection %s: %v", name, err)
	}
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
