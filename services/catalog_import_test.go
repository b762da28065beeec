package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadCSVTable(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols int
		wantRows int
		wantErr  error
	}{
		{"header and rows", "Fabric Code,Rate per Sqft,GST %\nVelvet,120,12\nSheer,80,18%\n", 3, 2, nil},
		{"ragged rows", "Fabric Code,Rate per Sqft\nVelvet\nSheer,80,18\n", 2, 2, nil},
		{"header only", "Fabric Code,Rate per Sqft\n", 0, 0, ErrNoDataRows},
		{"empty", "", 0, 0, ErrNoDataRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := readCSVTable(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("readCSVTable() error = %v, want %v", err, tt.wantErr)
			}
			if len(table.header) != tt.wantCols || len(table.rows) != tt.wantRows {
				t.Errorf("got %d headers and %d rows, want %d and %d",
					len(table.header), len(table.rows), tt.wantCols, tt.wantRows)
			}
		})
	}
}

func TestReadXLSXTable_HeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetRow("Sheet1", "A1", &[]any{"Fabric Code", "Rate per Sqft"})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := readXLSXTable(buf); !errors.Is(err, ErrNoDataRows) {
		t.Errorf("readXLSXTable() error = %v, want ErrNoDataRows", err)
	}
}

func TestMapHeadersToFields(t *testing.T) {
	fields := ProductTemplateFields()

	t.Run("labels", func(t *testing.T) {
		mapped, unrecognized := mapHeadersToFields([]string{"Fabric Code", "Rate per Sqft", "GST %"}, fields)
		if len(unrecognized) != 0 {
			t.Errorf("expected no unrecognized, got %v", unrecognized)
		}
		if mapped[0] != "name" || mapped[1] != "ratePerSqft" || mapped[2] != "gstPercent" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("sheet keys and case", func(t *testing.T) {
		mapped, _ := mapHeadersToFields([]string{"NAME", "ratepersqft"}, fields)
		if mapped[0] != "name" || mapped[1] != "ratePerSqft" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("with required asterisk", func(t *testing.T) {
		mapped, unrecognized := mapHeadersToFields([]string{"Fabric Code *", " Rate per Sqft * "}, fields)
		if len(unrecognized) != 0 || mapped[0] != "name" || mapped[1] != "ratePerSqft" {
			t.Errorf("mapped %v, unrecognized %v", mapped, unrecognized)
		}
	})

	t.Run("unrecognized columns", func(t *testing.T) {
		mapped, unrecognized := mapHeadersToFields([]string{"Fabric Code", "Colour", "Rate per Sqft"}, fields)
		if len(unrecognized) != 1 || unrecognized[0] != "Colour" {
			t.Errorf("expected [Colour], got %v", unrecognized)
		}
		if mapped[1] != "" {
			t.Errorf("expected empty for unrecognized column, got %q", mapped[1])
		}
	})
}

func TestParseCatalogFile_Products(t *testing.T) {
	input := strings.Join([]string{
		"Fabric Code *,Rate per Sqft *,GST %,Colour",
		"Velvet,120.5,12,red",
		",,,",
		",90,5,",
		"Sheer,abc,18%,",
		"Linen,,5,",
		"Blackout,95,180,",
		"Cotton,60,5 %,",
	}, "\n")

	result, rows, err := ParseCatalogFile(strings.NewReader(input), "products.csv", CatalogProducts)
	if err != nil {
		t.Fatalf("ParseCatalogFile() error = %v", err)
	}
	if result.TotalRows != 6 {
		t.Errorf("TotalRows = %d, want 6 (blank rows skipped)", result.TotalRows)
	}
	if result.ValidRows != 2 || len(rows) != 2 {
		t.Errorf("ValidRows = %d, rows = %d, want 2", result.ValidRows, len(rows))
	}
	if result.ErrorRows != 4 {
		t.Errorf("ErrorRows = %d, want 4: %+v", result.ErrorRows, result.Errors)
	}
	if rows[1].product != (Product{Name: "Cotton", RatePerSqft: 60, GSTPercent: 5}) {
		t.Errorf("rows[1] = %+v", rows[1].product)
	}

	want := map[int]string{4: "Fabric Code", 5: "Rate per Sqft", 6: "Rate per Sqft", 7: "GST %"}
	for _, e := range result.Errors {
		if want[e.Row] != e.Field {
			t.Errorf("unexpected error %+v", e)
		}
	}
}

func TestParseCatalogFile_Customers(t *testing.T) {
	input := "Customer Name,Mobile,GSTIN\nAsha,+91 98765 43210,27aapfu0939f1zv\nRavi,12345,\n"
	result, rows, err := ParseCatalogFile(strings.NewReader(input), "customers.CSV", CatalogCustomers)
	if err != nil {
		t.Fatalf("ParseCatalogFile() error = %v", err)
	}
	if len(rows) != 1 || rows[0].customer.GSTIN != "27AAPFU0939F1ZV" {
		t.Errorf("rows = %+v", rows)
	}
	if len(result.Errors) != 1 || result.Errors[0].Row != 3 || result.Errors[0].Field != "Mobile" {
		t.Errorf("errors = %+v", result.Errors)
	}
}

func TestParseCatalogFile_Rejects(t *testing.T) {
	if _, _, err := ParseCatalogFile(strings.NewReader("x"), "products.txt", CatalogProducts); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, _, err := ParseCatalogFile(strings.NewReader("GST %\n5\n"), "p.csv", CatalogProducts); err == nil {
		t.Error("expected error for missing required columns")
	}
}

func TestParseCatalogFile_Excel(t *testing.T) {
	tmpl, err := GenerateCatalogTemplate(CatalogProducts)
	if err != nil {
		t.Fatalf("GenerateCatalogTemplate() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(tmpl))
	if err != nil {
		t.Fatalf("template is not valid Excel: %v", err)
	}
	f.SetSheetRow("Products", "A2", &[]any{"Velvet", 120, "12"})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	f.Close()

	result, rows, err := ParseCatalogFile(&buf, "upload.xlsx", CatalogProducts)
	if err != nil {
		t.Fatalf("ParseCatalogFile() error = %v", err)
	}
	if result.ValidRows != 1 || rows[0].product.Name != "Velvet" || rows[0].product.RatePerSqft != 120 {
		t.Errorf("result = %+v rows = %+v", result, rows)
	}
}

func TestQuoteStore_ImportCatalog(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newTestWorkbook(t))

	input := "Fabric Code,Rate per Sqft,GST %\nVelvet,120,12\nBad,-1,5\nSheer,80,18\n"
	result, err := store.ImportCatalog(ctx, strings.NewReader(input), "p.csv", CatalogProducts)
	if err != nil {
		t.Fatalf("ImportCatalog() error = %v", err)
	}
	if result.Imported != 2 || result.ErrorRows != 1 {
		t.Errorf("result = %+v", result)
	}
	if got := store.ListProducts(ctx); len(got) != 2 {
		t.Errorf("ListProducts() = %+v", got)
	}

	if _, err := store.ImportCatalog(ctx, strings.NewReader("x"), "p.pdf", CatalogProducts); !errors.Is(err, ErrInvalidCatalogItem) {
		t.Errorf("bad file error = %v, want ErrInvalidCatalogItem", err)
	}
}

func TestQuoteStore_ImportCatalogWriteFailure(t *testing.T) {
	store := newTestStore(t, writeFailingBackend{Backend: newTestWorkbook(t)})
	input := "Customer Name\nAsha\nRavi\n"
	result, err := store.ImportCatalog(context.Background(), strings.NewReader(input), "c.csv", CatalogCustomers)
	if !errors.Is(err, errBackendDown) {
		t.Fatalf("ImportCatalog() error = %v, want backend error", err)
	}
	if result == nil || result.Imported != 0 {
		t.Errorf("partial result = %+v", result)
	}
}

func TestGenerateCatalogTemplate(t *testing.T) {
	for _, kind := range []CatalogKind{CatalogProducts, CatalogCustomers} {
		t.Run(string(kind), func(t *testing.T) {
			data, err := GenerateCatalogTemplate(kind)
			if err != nil {
				t.Fatalf("GenerateCatalogTemplate() error = %v", err)
			}
			f, err := excelize.OpenReader(bytesReader(data))
			if err != nil {
				t.Fatalf("not valid Excel: %v", err)
			}
			defer f.Close()

			sheets := f.GetSheetList()
			if len(sheets) != 2 || sheets[1] != "Instructions" {
				t.Errorf("sheets = %v", sheets)
			}
			a1, _ := f.GetCellValue(sheets[0], "A1")
			if !strings.HasSuffix(a1, " *") {
				t.Errorf("A1 = %q, want required marker", a1)
			}
		})
	}
}

func TestParseCatalogKind(t *testing.T) {
	if k, err := ParseCatalogKind("customers"); err != nil || k != CatalogCustomers {
		t.Errorf("ParseCatalogKind(customers) = %q, %v", k, err)
	}
	if _, err := ParseCatalogKind("vendors"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGenerateErrorReport_WithErrors(t *testing.T) {
	importErrs := []ImportError{
		{Row: 2, Field: "Fabric Code", Message: "cannot be blank"},
		{Row: 3, Field: "Mobile", Message: "invalid mobile number"},
	}

	result, err := GenerateErrorReport(importErrs)
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	if sheet != "Errors" {
		t.Errorf("expected sheet name 'Errors', got %q", sheet)
	}
	a1, _ := f.GetCellValue(sheet, "A1")
	b1, _ := f.GetCellValue(sheet, "B1")
	c1, _ := f.GetCellValue(sheet, "C1")
	if a1 != "Row #" || b1 != "Field" || c1 != "Error" {
		t.Errorf("unexpected headers: %q, %q, %q", a1, b1, c1)
	}
	a2, _ := f.GetCellValue(sheet, "A2")
	b2, _ := f.GetCellValue(sheet, "B2")
	if a2 != "2" || b2 != "Fabric Code" {
		t.Errorf("first row = %q, %q", a2, b2)
	}
}

func TestGenerateErrorReport_SortedByRow(t *testing.T) {
	result, err := GenerateErrorReport([]ImportError{
		{Row: 9, Field: "Rate per Sqft", Message: "must be a number"},
		{Row: 4, Field: "Fabric Code", Message: "cannot be blank"},
		{Row: 4, Field: "GST %", Message: "must be one of 0, 5, 12, 18, 28"},
	})
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Errors")
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"4", "Fabric Code"},
		{"4", "GST %"},
		{"9", "Rate per Sqft"},
	}
	if len(rows) != len(want)+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(want)+1)
	}
	for i, w := range want {
		got := rows[i+1]
		if got[0] != w[0] || got[1] != w[1] {
			t.Errorf("row %d = %v, want %v", i+2, got[:2], w)
		}
	}
}

func TestGenerateErrorReport_NoErrors(t *testing.T) {
	result, err := GenerateErrorReport([]ImportError{})
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateErrorReport() returned empty bytes")
	}
}
