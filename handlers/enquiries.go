package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"drapequote/services"
)

// HandleReviewSummary returns the count, average and distribution of
// approved reviews.
// Route: GET /api/reviews/summary
func HandleReviewSummary(logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.SummarizeReviews(e.App, GetLogger(e.Request, logger)))
	}
}

// HandleListQuoteRequests lists enquiries, newest first.
// Route: GET /api/quote-requests?status=
func HandleListQuoteRequests(logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		requests, err := services.ListQuoteRequests(e.App, e.Request.URL.Query().Get("status"), GetLogger(e.Request, logger))
		if err != nil {
			return respondError(e, logger, "quote requests: list", err)
		}
		return e.JSON(http.StatusOK, requests)
	}
}

// HandleCreateQuoteRequest stores an enquiry from the public site.
// Route: POST /api/quote-requests
func HandleCreateQuoteRequest(logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req services.QuoteRequest
		if err := e.BindBody(&req); err != nil {
			return badRequest(e, "Invalid request payload")
		}
		created, err := services.CreateQuoteRequest(e.App, req, GetLogger(e.Request, logger))
		if err != nil {
			return respondError(e, logger, "quote requests: create", err)
		}
		SetToast(e, ToastSuccess, "Thank you, we will call you shortly")
		return e.JSON(http.StatusCreated, created)
	}
}

// HandleUpdateQuoteRequestStatus moves an enquiry to a new status.
// Route: PATCH /api/quote-requests/{id}
func HandleUpdateQuoteRequestStatus(logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body struct {
			Status      string `json:"status"`
			QuotationNo string `json:"quotationNo"`
		}
		if err := e.BindBody(&body); err != nil {
			return badRequest(e, "Invalid status payload")
		}
		id := e.Request.PathValue("id")
		err := services.SetQuoteRequestStatus(e.App, id, body.Status, body.QuotationNo, GetLogger(e.Request, logger))
		if err != nil {
			return respondError(e, logger, "quote requests: status", err)
		}
		SetToast(e, ToastSuccess, "Enquiry marked "+body.Status)
		return e.NoContent(http.StatusNoContent)
	}
}
