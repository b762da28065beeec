package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"drapequote/services"
	"drapequote/views"
)

// loadExportData fetches a quotation and the site settings and assembles
// the printable document.
func loadExportData(e *core.RequestEvent, store *services.QuoteStore, logger *zap.Logger) (*services.QuoteExportData, error) {
	q, err := store.GetQuotation(e.Request.Context(), e.Request.PathValue("no"))
	if err != nil {
		return nil, err
	}
	settings := services.LoadSiteSettings(e.App, GetLogger(e.Request, logger))
	return services.BuildQuoteExportData(q, settings), nil
}

// HandleQuotePDF downloads a quotation as <no>.pdf.
// Route: GET /quotes/{no}/pdf
func HandleQuotePDF(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := loadExportData(e, store, logger)
		if err != nil {
			return respondError(e, logger, "export: pdf", err)
		}
		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			GetLogger(e.Request, logger).Error("export: generate pdf failed", zap.String("quotation_no", data.QuotationNo), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF")
		}
		return sendFile(e, logger, pdfContentType, services.QuoteFilename(data.QuotationNo, "pdf"), pdfBytes)
	}
}

// HandleQuoteExcel downloads a quotation as <no>.xlsx.
// Route: GET /quotes/{no}/xlsx
func HandleQuoteExcel(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := loadExportData(e, store, logger)
		if err != nil {
			return respondError(e, logger, "export: xlsx", err)
		}
		xlsx, err := services.GenerateQuoteExcel(data)
		if err != nil {
			GetLogger(e.Request, logger).Error("export: generate xlsx failed", zap.String("quotation_no", data.QuotationNo), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel")
		}
		return sendFile(e, logger, xlsxContentType, services.QuoteFilename(data.QuotationNo, "xlsx"), xlsx)
	}
}

// HandleQuoteUPIQR serves the QR code of the UPI payment link for the
// quotation's grand total. 404 when no UPI id is configured.
// Route: GET /quotes/{no}/upi-qr.png
func HandleQuoteUPIQR(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := loadExportData(e, store, logger)
		if err != nil {
			return respondError(e, logger, "export: upi qr", err)
		}
		if data.UPILink == "" {
			return ErrorToast(e, http.StatusNotFound, "UPI payments are not configured")
		}
		png, err := services.RenderQRPNG(data.UPILink, services.DefaultQRSize)
		if err != nil {
			GetLogger(e.Request, logger).Error("export: render qr failed", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to render QR code")
		}
		e.Response.Header().Set("Cache-Control", "no-store")
		return e.Blob(http.StatusOK, pngContentType, png)
	}
}

// HandleQuotePreview renders a quotation as an HTML page.
// Route: GET /quotes/{no}
func HandleQuotePreview(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := loadExportData(e, store, logger)
		if err != nil {
			status, message := statusFor(err)
			GetLogger(e.Request, logger).Info("export: preview unavailable", zap.Int("status", status), zap.Error(err))
			return ErrorToast(e, status, message)
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return views.QuotePreview(data, views.PreviewLinks(data.QuotationNo)).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteRegister downloads the quotations matching q as one XLSX list.
// Route: GET /api/quotes/export?q=
func HandleQuoteRegister(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query().Get("q")
		quotes := store.SearchQuotations(e.Request.Context(), query)

		title := "Quotations"
		if query != "" {
			title = fmt.Sprintf("Quotations matching %q", query)
		}
		xlsx, err := services.GenerateQuoteRegister(title, quotes)
		if err != nil {
			GetLogger(e.Request, logger).Error("export: register failed", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate export")
		}
		return sendFile(e, logger, xlsxContentType, "quotations.xlsx", xlsx)
	}
}
