package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"drapequote/services"
)

// calculateRequest is the body of POST /api/quotes/calculate. When EditID
// names an item, Edit is applied to it before totals are computed.
type calculateRequest struct {
	Items  []services.QuoteItem `json:"items"`
	EditID string               `json:"editId,omitempty"`
	Edit   *services.ItemEdit   `json:"edit,omitempty"`
}

// calculateResponse carries recomputed items and totals.
type calculateResponse struct {
	Items        []services.QuoteItem `json:"items"`
	Totals       services.Totals      `json:"totals"`
	GSTBreakdown []services.GSTLine   `json:"gstBreakdown"`
	AmountWords  string               `json:"amountInWords"`
}

// HandleCalculate recomputes line amounts and totals without saving.
// Route: POST /api/quotes/calculate
func HandleCalculate() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req calculateRequest
		if err := e.BindBody(&req); err != nil {
			return badRequest(e, "Invalid items payload")
		}

		if len(req.Items) > services.MaxQuoteItems {
			return badRequest(e, fmt.Sprintf("A quotation holds at most %d items", services.MaxQuoteItems))
		}
		if err := validateItems(req.Items); err != nil {
			return respondError(e, nil, "quotes: calculate", err)
		}

		items := services.RecomputeItems(req.Items)
		if req.EditID != "" && req.Edit != nil {
			found := false
			for i := range items {
				if items[i].ID == req.EditID {
					items[i] = services.ApplyItemEdit(items[i], *req.Edit)
					if err := validateItems(items[i : i+1]); err != nil {
						return respondError(e, nil, "quotes: calculate", err)
					}
					found = true
					break
				}
			}
			if !found {
				return badRequest(e, fmt.Sprintf("Item %s not found", req.EditID))
			}
		}

		totals := services.RecomputeTotals(items)
		return e.JSON(http.StatusOK, calculateResponse{
			Items:        items,
			Totals:       totals,
			GSTBreakdown: services.GSTBreakdownLines(items),
			AmountWords:  services.AmountInWords(totals.GrandTotal),
		})
	}
}

// validateItems checks every line before any amount is computed from it.
func validateItems(items []services.QuoteItem) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: %w", services.ErrInvalidQuote, i+1, err)
		}
	}
	return nil
}

// HandleNextNumber returns the number the next new quotation will get.
// Route: GET /api/quotes/next-number
func HandleNextNumber(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]string{
			"quotationNo": store.NextQuotationNumber(e.Request.Context()),
		})
	}
}

// HandleSearchQuotes lists quotations whose number or customer matches q.
// Route: GET /api/quotes?q=
func HandleSearchQuotes(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotes := store.SearchQuotations(e.Request.Context(), e.Request.URL.Query().Get("q"))
		return e.JSON(http.StatusOK, quotes)
	}
}

// HandleGetQuote returns one quotation.
// Route: GET /api/quotes/{no}
func HandleGetQuote(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, err := store.GetQuotation(e.Request.Context(), e.Request.PathValue("no"))
		if err != nil {
			return respondError(e, logger, "quotes: get", err)
		}
		return e.JSON(http.StatusOK, q)
	}
}

// HandleCreateQuote saves a new quotation. A missing number is allocated.
// Route: POST /api/quotes
func HandleCreateQuote(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var q services.Quote
		if err := e.BindBody(&q); err != nil {
			return badRequest(e, "Invalid quotation payload")
		}
		if err := store.AppendQuotation(e.Request.Context(), &q); err != nil {
			return respondError(e, logger, "quotes: create", err)
		}
		SetTrigger(e, QuotesChangedEvent, map[string]string{"quotationNo": q.QuotationNo})
		SetToast(e, ToastSuccess, fmt.Sprintf("Quotation %s saved", q.QuotationNo))
		return e.JSON(http.StatusCreated, q)
	}
}

// HandleUpdateQuote overwrites an existing quotation. The number in the
// path wins over any number in the body.
// Route: PUT /api/quotes/{no}
func HandleUpdateQuote(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		no := strings.TrimSpace(e.Request.PathValue("no"))
		var q services.Quote
		if err := e.BindBody(&q); err != nil {
			return badRequest(e, "Invalid quotation payload")
		}
		q.QuotationNo = no
		if err := store.UpdateQuotation(e.Request.Context(), &q); err != nil {
			return respondError(e, logger, "quotes: update", err)
		}
		SetTrigger(e, QuotesChangedEvent, map[string]string{"quotationNo": no})
		SetToast(e, ToastSuccess, fmt.Sprintf("Quotation %s updated", no))
		return e.JSON(http.StatusOK, q)
	}
}

// HandleDeleteQuote clears a quotation's row.
// Route: DELETE /api/quotes/{no}
func HandleDeleteQuote(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		no := strings.TrimSpace(e.Request.PathValue("no"))
		if err := store.DeleteQuotation(e.Request.Context(), no); err != nil {
			return respondError(e, logger, "quotes: delete", err)
		}
		SetTrigger(e, QuotesChangedEvent, map[string]string{"quotationNo": no})
		SetToast(e, ToastSuccess, fmt.Sprintf("Quotation %s deleted", no))
		return e.NoContent(http.StatusNoContent)
	}
}
