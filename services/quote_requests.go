package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

var (
	// ErrQuoteRequestNotFound is returned when an enquiry id does not exist.
	ErrQuoteRequestNotFound = errors.New("quote request not found")
	// ErrUnknownQuoteRequestStatus is returned for a status outside
	// QuoteRequestStatuses.
	ErrUnknownQuoteRequestStatus = errors.New("unknown quote request status")
	// ErrSiteStore wraps failures of the site database itself.
	ErrSiteStore = errors.New("site database unavailable")
)

// QuoteRequest is an enquiry submitted through the public site.
type QuoteRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email,omitempty"`
	City        string `json:"city,omitempty"`
	Message     string `json:"message,omitempty"`
	Status      string `json:"status"`
	QuotationNo string `json:"quotationNo,omitempty"`
	Created     string `json:"created"`
}

// QuoteRequestStatuses lists the accepted enquiry states.
var QuoteRequestStatuses = []string{"new", "contacted", "quoted", "closed"}

// ListQuoteRequests returns enquiries, newest first, optionally filtered by
// status. An unknown status is an error; a failed read yields an empty list.
func ListQuoteRequests(app core.App, status string, logger *zap.Logger) ([]QuoteRequest, error) {
	filter := "1=1"
	params := map[string]any{}
	if status != "" {
		if !knownQuoteRequestStatus(status) {
			return nil, fmt.Errorf("%w %q", ErrUnknownQuoteRequestStatus, status)
		}
		filter = "status = {:status}"
		params["status"] = status
	}

	records, err := app.FindRecordsByFilter("quote_requests", filter, "-created", 0, 0, params)
	if err != nil {
		logger.Warn("quote requests: list failed", zap.String("status", status), zap.Error(err))
		return []QuoteRequest{}, nil
	}

	out := make([]QuoteRequest, 0, len(records))
	for _, r := range records {
		out = append(out, QuoteRequest{
			ID:          r.Id,
			Name:        r.GetString("name"),
			Mobile:      r.GetString("mobile"),
			Email:       r.GetString("email"),
			City:        r.GetString("city"),
			Message:     r.GetString("message"),
			Status:      r.GetString("status"),
			QuotationNo: r.GetString("quotation_no"),
			Created:     r.GetDateTime("created").String(),
		})
	}
	return out, nil
}

func knownQuoteRequestStatus(status string) bool {
	for _, s := range QuoteRequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Validate checks the fields a visitor fills in on the enquiry form.
func (r QuoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Mobile, validation.Required, validation.By(phoneRule)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Message, validation.Length(0, 2000)),
	)
}

// CreateQuoteRequest stores a new enquiry with status "new".
func CreateQuoteRequest(app core.App, req QuoteRequest, logger *zap.Logger) (QuoteRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.City = strings.TrimSpace(req.City)
	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		return QuoteRequest{}, err
	}
	req.Mobile = NormalizeMobile(req.Mobile)
	req.Status = "new"

	col, err := app.FindCollectionByNameOrId("quote_requests")
	if err != nil {
		return QuoteRequest{}, fmt.Errorf("%w: find quote_requests: %w", ErrSiteStore, err)
	}
	record := core.NewRecord(col)
	record.Set("name", req.Name)
	record.Set("mobile", req.Mobile)
	record.Set("email", req.Email)
	record.Set("city", req.City)
	record.Set("message", req.Message)
	record.Set("status", req.Status)
	if err := app.Save(record); err != nil {
		return QuoteRequest{}, fmt.Errorf("%w: save quote request: %w", ErrSiteStore, err)
	}

	req.ID = record.Id
	req.Created = record.GetDateTime("created").String()
	logger.Info("quote requests: created", zap.String("id", req.ID), zap.String("city", req.City))
	return req, nil
}

// SetQuoteRequestStatus moves an enquiry to status. A non-empty quotationNo
// links the enquiry to the quotation sent in reply.
func SetQuoteRequestStatus(app core.App, id, status, quotationNo string, logger *zap.Logger) error {
	if !knownQuoteRequestStatus(status) {
		return fmt.Errorf("%w %q", ErrUnknownQuoteRequestStatus, status)
	}
	record, err := app.FindRecordById("quote_requests", id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrQuoteRequestNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: find quote request %s: %w", ErrSiteStore, id, err)
	}
	record.Set("status", status)
	if quotationNo = strings.TrimSpace(quotationNo); quotationNo != "" {
		record.Set("quotation_no", quotationNo)
	}
	if err := app.Save(record); err != nil {
		return fmt.Errorf("%w: save quote request: %w", ErrSiteStore, err)
	}
	logger.Info("quote requests: status changed",
		zap.String("id", id),
		zap.String("status", status),
		zap.String("quotationNo", quotationNo),
	)
	return nil
}
