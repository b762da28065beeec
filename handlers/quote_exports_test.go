package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"drapequote/testhelpers"
)

func TestHandleQuoteDownloads(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSiteSettings(t, app, map[string]any{"upi_id": "drapes@okhdfc"})
	store, _ := testhelpers.NewTestQuoteStore(t)
	q := createTestQuote(t, store, "Asha")

	tests := []struct {
		name        string
		handler     func(e *http.Request, rec *httptest.ResponseRecorder) error
		contentType string
		filename    string
	}{
		{"pdf", func(req *http.Request, rec *httptest.ResponseRecorder) error {
			return HandleQuotePDF(store, zap.NewNop())(newTestRequestEvent(app, req, rec))
		}, pdfContentType, `attachment; filename="QT1001.pdf"`},
		{"xlsx", func(req *http.Request, rec *httptest.ResponseRecorder) error {
			return HandleQuoteExcel(store, zap.NewNop())(newTestRequestEvent(app, req, rec))
		}, xlsxContentType, `attachment; filename="QT1001.xlsx"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/quotes/"+q.QuotationNo+"/"+tt.name, nil)
			req.SetPathValue("no", q.QuotationNo)
			rec := httptest.NewRecorder()
			if err := tt.handler(req, rec); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if cd := rec.Header().Get("Content-Disposition"); cd != tt.filename {
				t.Errorf("Content-Disposition = %q, want %q", cd, tt.filename)
			}
			if rec.Body.Len() == 0 {
				t.Error("expected a non-empty body")
			}
		})
	}
}

func TestHandleQuotePDF_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store, _ := testhelpers.NewTestQuoteStore(t)

	req := httptest.NewRequest(http.MethodGet, "/quotes/QT404/pdf", nil)
	req.SetPathValue("no", "QT404")
	rec := httptest.NewRecorder()
	if err := HandleQuotePDF(store, zap.NewNop())(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleQuoteUPIQR(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)
	q := createTestQuote(t, store, "Asha")

	t.Run("configured", func(t *testing.T) {
		app := testhelpers.NewTestApp(t)
		testhelpers.CreateTestSiteSettings(t, app, map[string]any{"upi_id": "drapes@okhdfc"})

		req := httptest.NewRequest(http.MethodGet, "/quotes/"+q.QuotationNo+"/upi-qr.png", nil)
		req.SetPathValue("no", q.QuotationNo)
		rec := httptest.NewRecorder()
		if err := HandleQuoteUPIQR(store, zap.NewNop())(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if _, err := png.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
			t.Errorf("body is not a PNG: %v", err)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		app := testhelpers.NewTestApp(t)

		req := httptest.NewRequest(http.MethodGet, "/quotes/"+q.QuotationNo+"/upi-qr.png", nil)
		req.SetPathValue("no", q.QuotationNo)
		rec := httptest.NewRecorder()
		if err := HandleQuoteUPIQR(store, zap.NewNop())(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleQuotePreview(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSiteSettings(t, app, map[string]any{"company_name": "Silk Route Furnishings"})
	store, _ := testhelpers.NewTestQuoteStore(t)
	q := createTestQuote(t, store, "Asha <b>Mehta</b>")

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+q.QuotationNo, nil)
	req.SetPathValue("no", q.QuotationNo)
	rec := httptest.NewRecorder()
	if err := HandleQuotePreview(store, zap.NewNop())(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Silk Route Furnishings",
		"Quotation QT1001",
		"Asha &lt;b&gt;Mehta&lt;/b&gt;",
		"VELVET-01",
		`href="/quotes/QT1001/pdf"`,
	)
	testhelpers.AssertHTMLNotContains(t, body, "<b>Mehta</b>", "Pay via UPI")
}

func TestHandleQuotePreview_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store, _ := testhelpers.NewTestQuoteStore(t)

	req := httptest.NewRequest(http.MethodGet, "/quotes/QT404", nil)
	req.SetPathValue("no", "QT404")
	rec := httptest.NewRecorder()
	if err := HandleQuotePreview(store, zap.NewNop())(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleQuoteRegister(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)
	createTestQuote(t, store, "Asha Mehta")
	createTestQuote(t, store, "Ravi Kumar")

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/export?q=ravi", nil)
	rec := httptest.NewRecorder()
	if err := HandleQuoteRegister(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("body is not a workbook: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Quotations", "A2"); v != "Total: 1 quotations" {
		t.Errorf("A2 = %q", v)
	}
	if v, _ := f.GetCellValue("Quotations", "C5"); v != "Ravi Kumar" {
		t.Errorf("C5 = %q", v)
	}
}
