package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"drapequote/services"
)

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

// statusFor maps engine errors to an HTTP status and a user-facing message.
func statusFor(err error) (int, string) {
	var rowErr *services.RowError
	var verrs validation.Errors
	switch {
	case errors.Is(err, services.ErrQuotationNotFound):
		return http.StatusNotFound, "Quotation not found"
	case errors.Is(err, services.ErrQuoteRequestNotFound):
		return http.StatusNotFound, "Quote request not found"
	case errors.Is(err, services.ErrQuotationExists):
		return http.StatusConflict, "Quotation number already exists"
	case errors.Is(err, services.ErrUnknownQuoteRequestStatus):
		return http.StatusBadRequest, "Unknown enquiry status"
	case errors.Is(err, services.ErrSiteStore):
		return http.StatusInternalServerError, "Could not reach the site database"
	case errors.Is(err, services.ErrInvalidQuote),
		errors.Is(err, services.ErrInvalidCatalogItem),
		errors.As(err, &verrs):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &rowErr), errors.Is(err, services.ErrUnsupportedItemsVersion):
		return http.StatusUnprocessableEntity, "Stored quotation is malformed"
	default:
		return http.StatusBadGateway, "Spreadsheet backend unavailable"
	}
}

// respondError logs err, toasts the user-facing message and writes it as JSON.
func respondError(e *core.RequestEvent, logger *zap.Logger, op string, err error) error {
	status, message := statusFor(err)
	log := GetLogger(e.Request, logger)
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Info(op+" rejected", zap.Int("status", status), zap.Error(err))
	}

	body := errorResponse{Message: message}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		body.Errors = verrs
	}
	SetToast(e, ToastError, message)
	return e.JSON(status, body)
}

// badRequest answers 400 with message.
func badRequest(e *core.RequestEvent, message string) error {
	SetToast(e, ToastError, message)
	return e.JSON(http.StatusBadRequest, errorResponse{Message: message})
}
