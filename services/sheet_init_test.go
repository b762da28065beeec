package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"drapequote/tabular"
)

func TestInitSheets(t *testing.T) {
	ctx := context.Background()
	wb, err := tabular.OpenWorkbook(filepath.Join(t.TempDir(), "init.xlsx"), zap.NewNop())
	if err != nil {
		t.Fatalf("OpenWorkbook() error = %v", err)
	}
	t.Cleanup(func() { wb.Close() })

	// Sheets exist but are blank, as when created by hand.
	for _, s := range Schemas() {
		if err := wb.EnsureSheet(s.Name, nil); err != nil {
			t.Fatalf("EnsureSheet(%s) error = %v", s.Name, err)
		}
	}
	// A custom header must survive.
	if err := wb.Update(ctx, "Products", "A1:C1", []any{"Fabric", "Rate", "GST"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	store := newTestStore(t, wb)
	if err := InitSheets(ctx, wb, zap.NewNop()); err != nil {
		t.Fatalf("InitSheets() error = %v", err)
	}

	products, _ := wb.Read(ctx, "Products", "A1:C1")
	if products[0][0] != "Fabric" {
		t.Errorf("existing header overwritten: %v", products[0])
	}
	quotations, _ := wb.Read(ctx, QuotationsSheet.Name, QuotationsSheet.RowSpan(1))
	if len(quotations) != 1 || len(quotations[0]) != len(QuotationsSheet.Columns) {
		t.Fatalf("Quotations header = %v", quotations)
	}
	if quotations[0][0] != QuotationsSheet.Columns[0] {
		t.Errorf("first header = %q", quotations[0][0])
	}

	// Headers are never read back as data.
	if got := store.NextQuotationNumber(ctx); got != "QT1001" {
		t.Errorf("NextQuotationNumber() = %q, want QT1001", got)
	}

	if err := InitSheets(ctx, wb, zap.NewNop()); err != nil {
		t.Fatalf("second InitSheets() error = %v", err)
	}
}

func TestInitSheets_ReadFailure(t *testing.T) {
	err := InitSheets(context.Background(), failingBackend{}, zap.NewNop())
	if !errors.Is(err, errBackendDown) {
		t.Errorf("expected backend error, got %v", err)
	}
}
