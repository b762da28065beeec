// Package views renders the HTML pages served next to the JSON API.
package views

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"drapequote/services"
)

// QuotePreviewLinks are the download targets shown above a preview.
type QuotePreviewLinks struct {
	PDF   templ.SafeURL
	Excel templ.SafeURL
	QR    templ.SafeURL
}

// PreviewLinks returns the download links of the quotation numbered no.
func PreviewLinks(no string) QuotePreviewLinks {
	base := "/quotes/" + url.PathEscape(no)
	return QuotePreviewLinks{
		PDF:   templ.URL(base + "/pdf"),
		Excel: templ.URL(base + "/xlsx"),
		QR:    templ.URL(base + "/upi-qr.png"),
	}
}

// upiHref marks the payment link safe. templ.URL rejects the upi: scheme and
// the link is built by services.BuildUPILink.
func upiHref(data *services.QuoteExportData) templ.SafeURL {
	return templ.SafeURL(data.UPILink)
}

type detail struct {
	Label, Value string
}

// bankDetails lists the filled-in bank transfer fields in print order.
func bankDetails(data *services.QuoteExportData) []detail {
	var out []detail
	for _, d := range []detail{
		{"Account Name", data.BankAccountName},
		{"Bank", data.BankName},
		{"Account No", data.BankAccountNo},
		{"IFSC", data.BankIFSC},
		{"Branch", data.BankBranch},
	} {
		if d.Value != "" {
			out = append(out, d)
		}
	}
	return out
}

// itemCells returns the item table cells of l, one per services.QuoteItemHeaders column.
func itemCells(l services.QuoteExportLine) []string {
	return []string{
		strconv.Itoa(l.Index),
		l.FabricCode,
		l.Category,
		l.Width,
		l.Height,
		strconv.Itoa(l.Quantity),
		services.FormatSqft(l.Sqft),
		services.FormatINR(l.Rate),
		services.FormatINR(l.Amount),
		services.FormatPercent(l.GSTPercent),
		services.FormatINR(l.GSTAmount),
		services.FormatINR(l.LineTotal),
	}
}
