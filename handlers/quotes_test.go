package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"drapequote/services"
	"drapequote/testhelpers"
)

const quoteBody = `{
	"customer": {"name": "Asha Mehta", "mobile": "9876543210"},
	"items": [
		{"fabricCode": "VELVET-01", "width": 48, "height": 84, "unit": "inch", "quantity": 2, "addSixInches": true, "rate": 45, "gstPercent": 12},
		{"fabricCode": "SHEER-22", "width": 120, "height": 210, "unit": "cm", "quantity": 1, "rate": 60, "gstPercent": 18}
	]
}`

func createTestQuote(t *testing.T, store *services.QuoteStore, customer string) services.Quote {
	t.Helper()
	q := services.Quote{
		DateISO:  "2026-03-14",
		Customer: services.Customer{Name: customer, Mobile: "9876543210"},
		Items: []services.QuoteItem{
			services.NewQuoteItem(services.Product{Name: "VELVET-01", RatePerSqft: 45, GSTPercent: 12}, 48, 84, services.UnitInch, 2, true),
		},
	}
	if err := store.AppendQuotation(context.Background(), &q); err != nil {
		t.Fatalf("AppendQuotation() error = %v", err)
	}
	return q
}

func TestHandleCalculate(t *testing.T) {
	req := newJSONRequest(http.MethodPost, "/api/quotes/calculate", `{"items": [
		{"id": "a", "fabricCode": "VELVET-01", "width": 48, "height": 84, "unit": "inch", "quantity": 1, "rate": 45, "gstPercent": 12}
	], "editId": "a", "edit": {"quantity": 3}}`)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(nil, req, rec)

	if err := HandleCalculate()(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp calculateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 3 {
		t.Fatalf("items = %+v", resp.Items)
	}
	if resp.Items[0].Sqft != 28 {
		t.Errorf("sqft = %v, want 28", resp.Items[0].Sqft)
	}
	if resp.Totals.GrandTotal <= resp.Totals.Subtotal {
		t.Errorf("totals = %+v", resp.Totals)
	}
	if len(resp.GSTBreakdown) != 1 || !strings.HasSuffix(resp.AmountWords, "Rupees Only") {
		t.Errorf("breakdown = %+v, words = %q", resp.GSTBreakdown, resp.AmountWords)
	}
}

func TestHandleCalculate_UnknownEdit(t *testing.T) {
	req := newJSONRequest(http.MethodPost, "/api/quotes/calculate", `{"items": [], "editId": "missing", "edit": {"quantity": 3}}`)
	rec := httptest.NewRecorder()

	if err := HandleCalculate()(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleCalculate_RejectsOutOfRangeItems(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"huge_rate", `{"items": [{"id": "a", "fabricCode": "VELVET-01", "width": 48, "height": 84, "unit": "inch", "quantity": 1, "rate": 1e30, "gstPercent": 12}]}`},
		{"huge_width", `{"items": [{"id": "a", "fabricCode": "VELVET-01", "width": 1e200, "height": 1e200, "unit": "inch", "quantity": 1, "rate": 45, "gstPercent": 12}]}`},
		{"bad_unit", `{"items": [{"id": "a", "fabricCode": "VELVET-01", "width": 48, "height": 84, "unit": "yard", "quantity": 1, "rate": 45, "gstPercent": 12}]}`},
		{"edit_out_of_range", `{"items": [{"id": "a", "fabricCode": "VELVET-01", "width": 48, "height": 84, "unit": "inch", "quantity": 1, "rate": 45, "gstPercent": 12}], "editId": "a", "edit": {"width": 1e300}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(http.MethodPost, "/api/quotes/calculate", tt.body)
			rec := httptest.NewRecorder()

			if err := HandleCalculate()(newTestRequestEvent(nil, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var body struct {
				Message string         `json:"message"`
				Errors  map[string]any `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if len(body.Errors) == 0 {
				t.Errorf("expected field errors, got %+v", body)
			}
		})
	}
}

func TestHandleCreateQuote(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)

	req := newJSONRequest(http.MethodPost, "/api/quotes", quoteBody)
	rec := httptest.NewRecorder()
	if err := HandleCreateQuote(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var q services.Quote
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if q.QuotationNo != "QT1001" {
		t.Errorf("quotationNo = %q, want QT1001", q.QuotationNo)
	}
	if q.GrandTotal <= 0 || q.CreatedAt == "" {
		t.Errorf("expected totals and timestamps, got %+v", q)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), QuotesChangedEvent) {
		t.Error("expected quotesChanged trigger")
	}

	got, err := store.GetQuotation(context.Background(), "QT1001")
	if err != nil || got.Customer.Name != "Asha Mehta" {
		t.Errorf("stored quote = %+v, err = %v", got, err)
	}
}

func TestHandleCreateQuote_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"customer":`, http.StatusBadRequest},
		{"no items", `{"customer": {"name": "Asha"}, "items": []}`, http.StatusBadRequest},
		{"no customer", `{"items": [{"fabricCode": "V", "width": 10, "height": 10, "unit": "inch", "quantity": 1}]}`, http.StatusBadRequest},
		{"duplicate number", `{"quotationNo": "QT1001", "customer": {"name": "Ravi"}, "items": [{"fabricCode": "V", "width": 10, "height": 10, "unit": "inch", "quantity": 1}]}`, http.StatusConflict},
	}

	store, _ := testhelpers.NewTestQuoteStore(t)
	createTestQuote(t, store, "Asha")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(http.MethodPost, "/api/quotes", tt.body)
			rec := httptest.NewRecorder()
			if err := HandleCreateQuote(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Header().Get("HX-Trigger"), "showToast") {
				t.Error("expected error toast")
			}
		})
	}
}

func TestHandleCreateQuote_ValidationErrorsInBody(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)

	req := newJSONRequest(http.MethodPost, "/api/quotes", `{"customer": {"name": ""}, "items": []}`)
	rec := httptest.NewRecorder()
	if err := HandleCreateQuote(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(body["errors"], &fields); err != nil {
		t.Fatalf("errors is not an object: %s", body["errors"])
	}
	if _, ok := fields["items"]; !ok {
		t.Errorf("expected items error, got %v", fields)
	}
}

func TestHandleNextNumber(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)
	createTestQuote(t, store, "Asha")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quotes/next-number", nil)
	if err := HandleNextNumber(store)(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `"quotationNo":"QT1002"`)
}

func TestHandleSearchQuotes(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)
	createTestQuote(t, store, "Asha Mehta")
	createTestQuote(t, store, "Ravi Kumar")

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"asha", 1},
		{"QT100", 2},
		{"nobody", 0},
	}
	for _, tt := range tests {
		t.Run("q="+tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/quotes?q="+tt.query, nil)
			rec := httptest.NewRecorder()
			if err := HandleSearchQuotes(store)(newTestRequestEvent(nil, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			var quotes []services.Quote
			if err := json.Unmarshal(rec.Body.Bytes(), &quotes); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if len(quotes) != tt.want {
				t.Errorf("got %d quotes, want %d", len(quotes), tt.want)
			}
		})
	}
}

func TestHandleGetQuote(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)
	q := createTestQuote(t, store, "Asha")

	tests := []struct {
		no   string
		want int
	}{
		{q.QuotationNo, http.StatusOK},
		{"QT9999", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.no, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+tt.no, nil)
			req.SetPathValue("no", tt.no)
			rec := httptest.NewRecorder()
			if err := HandleGetQuote(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHandleUpdateQuote(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)
	q := createTestQuote(t, store, "Asha")

	body := `{"quotationNo": "IGNORED", "date": "2026-03-15", "customer": {"name": "Asha M"}, "items": [{"fabricCode": "LINEN-07", "width": 60, "height": 90, "unit": "inch", "quantity": 1, "rate": 80, "gstPercent": 5}]}`
	req := newJSONRequest(http.MethodPut, "/api/quotes/"+q.QuotationNo, body)
	req.SetPathValue("no", q.QuotationNo)
	rec := httptest.NewRecorder()
	if err := HandleUpdateQuote(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := store.GetQuotation(context.Background(), q.QuotationNo)
	if err != nil {
		t.Fatalf("GetQuotation() error = %v", err)
	}
	if got.Customer.Name != "Asha M" || got.Items[0].FabricCode != "LINEN-07" {
		t.Errorf("quote not updated: %+v", got)
	}
	if got.CreatedAt != q.CreatedAt {
		t.Errorf("createdAt changed: %q -> %q", q.CreatedAt, got.CreatedAt)
	}
}

func TestHandleUpdateQuote_NotFound(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)

	body := strings.Replace(quoteBody, `"customer"`, `"date": "2026-03-14", "customer"`, 1)
	req := newJSONRequest(http.MethodPut, "/api/quotes/QT4040", body)
	req.SetPathValue("no", "QT4040")
	rec := httptest.NewRecorder()
	if err := HandleUpdateQuote(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if quotes := store.SearchQuotations(context.Background(), ""); len(quotes) != 0 {
		t.Errorf("update of a missing quote must not write, found %d quotes", len(quotes))
	}
}

func TestHandleDeleteQuote(t *testing.T) {
	store, _ := testhelpers.NewTestQuoteStore(t)
	q := createTestQuote(t, store, "Asha")

	tests := []struct {
		name string
		want int
	}{
		{"existing", http.StatusNoContent},
		{"already deleted", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/quotes/"+q.QuotationNo, nil)
			req.SetPathValue("no", q.QuotationNo)
			rec := httptest.NewRecorder()
			if err := HandleDeleteQuote(store, zap.NewNop())(newTestRequestEvent(nil, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
