package handlers

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"drapequote/services"
)

// catalogResponse is the body of GET /api/catalog.
type catalogResponse struct {
	Products  []services.Product  `json:"products"`
	Customers []services.Customer `json:"customers"`
}

// HandleCatalog returns products and customers, read concurrently. Either
// list is empty when its sheet cannot be read.
// Route: GET /api/catalog
func HandleCatalog(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var resp catalogResponse
		g, ctx := errgroup.WithContext(e.Request.Context())
		g.Go(func() error {
			resp.Products = store.ListProducts(ctx)
			return nil
		})
		g.Go(func() error {
			resp.Customers = store.ListCustomers(ctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleAddProduct appends a product to the catalogue.
// Route: POST /api/products
func HandleAddProduct(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var p services.Product
		if err := e.BindBody(&p); err != nil {
			return badRequest(e, "Invalid product payload")
		}
		if err := store.AddProduct(e.Request.Context(), p); err != nil {
			return respondError(e, logger, "catalog: add product", err)
		}
		SetToast(e, ToastSuccess, fmt.Sprintf("Fabric %s added", p.Name))
		return e.JSON(http.StatusCreated, p)
	}
}

// HandleAddCustomer appends a customer to the catalogue.
// Route: POST /api/customers
func HandleAddCustomer(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var c services.Customer
		if err := e.BindBody(&c); err != nil {
			return badRequest(e, "Invalid customer payload")
		}
		if err := store.AddCustomer(e.Request.Context(), c); err != nil {
			return respondError(e, logger, "catalog: add customer", err)
		}
		SetToast(e, ToastSuccess, fmt.Sprintf("Customer %s added", c.Name))
		return e.JSON(http.StatusCreated, c)
	}
}

// HandleCatalogTemplate downloads the blank upload template for a catalogue.
// Route: GET /api/catalog/template?kind=products|customers
func HandleCatalogTemplate(logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := services.ParseCatalogKind(e.Request.URL.Query().Get("kind"))
		if err != nil {
			return badRequest(e, err.Error())
		}
		data, err := services.GenerateCatalogTemplate(kind)
		if err != nil {
			GetLogger(e.Request, logger).Error("catalog: template failed", zap.String("kind", string(kind)), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate template")
		}
		return sendFile(e, logger, xlsxContentType, string(kind)+"-template.xlsx", data)
	}
}

// HandleCatalogImport validates an uploaded CSV or XLSX file and appends
// its valid rows. The response lists every rejected row.
// Route: POST /api/catalog/import?kind=products|customers
func HandleCatalogImport(store *services.QuoteStore, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := services.ParseCatalogKind(e.Request.URL.Query().Get("kind"))
		if err != nil {
			return badRequest(e, err.Error())
		}
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return badRequest(e, "File too large or invalid form data")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return badRequest(e, "Please select a file to upload")
		}
		defer file.Close()

		result, err := store.ImportCatalog(e.Request.Context(), file, header.Filename, kind)
		if err != nil && result == nil {
			return respondError(e, logger, "catalog: import", err)
		}
		if err != nil {
			status, message := statusFor(err)
			GetLogger(e.Request, logger).Error("catalog: import stopped", zap.Int("imported", result.Imported), zap.Error(err))
			SetToast(e, ToastError, message)
			return e.JSON(status, result)
		}

		toastType := ToastSuccess
		if result.ErrorRows > 0 {
			toastType = ToastInfo
		}
		SetToast(e, toastType, fmt.Sprintf("Imported %d of %d rows", result.Imported, result.TotalRows))
		return e.JSON(http.StatusOK, result)
	}
}

// HandleCatalogErrorReport turns the errors of an import result into an
// XLSX download.
// Route: POST /api/catalog/import/errors
func HandleCatalogErrorReport(logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body struct {
			Errors []services.ImportError `json:"errors"`
		}
		if err := e.BindBody(&body); err != nil {
			return badRequest(e, "Invalid error report payload")
		}
		data, err := services.GenerateErrorReport(body.Errors)
		if err != nil {
			GetLogger(e.Request, logger).Error("catalog: error report failed", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate error report")
		}
		return sendFile(e, logger, xlsxContentType, "import-errors.xlsx", data)
	}
}

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
	pngContentType  = "image/png"
)

// sendFile writes data as an attachment named filename.
func sendFile(e *core.RequestEvent, logger *zap.Logger, contentType, filename string, data []byte) error {
	GetLogger(e.Request, logger).Info("http: download",
		zap.String("file", filename),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
	)
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return e.Blob(http.StatusOK, contentType, data)
}
