package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"drapequote/services"
)

func previewData() *services.QuoteExportData {
	return &services.QuoteExportData{
		CompanyName:   "Drape Studio",
		CompanyGSTIN:  "27AAPFU0939F1ZV",
		QuotationNo:   "QT1001",
		Date:          "14 Mar 2026",
		Customer:      services.Customer{Name: "Asha <Mehta>", Mobile: "9876543210"},
		Lines:         []services.QuoteExportLine{{Index: 1, FabricCode: "VELVET-01", Width: "48 inch", Height: "84 inch", Quantity: 2, Sqft: 61.25, Rate: 45, Amount: 2756.25, GSTPercent: 12, LineTotal: 3087}},
		Subtotal:      2756.25,
		GSTLines:      []services.GSTLine{{Label: "12%", Rate: 12, Amount: 330.75}},
		GrandTotal:    3087,
		AmountInWords: "Rupees Three Thousand Eighty Seven Only",
		UPIID:         "drapes@okhdfc",
		UPILink:       "upi://pay?pa=drapes@okhdfc&pn=Drape%20Studio&am=3087.00&cu=INR",
		Terms:         []string{"Advance 50%"},
	}
}

func TestQuotePreview_Render(t *testing.T) {
	var buf bytes.Buffer
	if err := QuotePreview(previewData(), PreviewLinks("QT1001")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()

	for _, frag := range []string{
		"<title>Quotation QT1001</title>",
		"Asha &lt;Mehta&gt;",
		"VELVET-01",
		"GST 12%",
		"Grand Total",
		"Rupees Three Thousand Eighty Seven Only",
		`href="/quotes/QT1001/pdf"`,
		`src="/quotes/QT1001/upi-qr.png"`,
		"upi://pay?pa=drapes@okhdfc&amp;pn=Drape%20Studio",
		"<li>Advance 50%</li>",
	} {
		if !strings.Contains(html, frag) {
			t.Errorf("preview missing %q", frag)
		}
	}
	if strings.Contains(html, "<Mehta>") {
		t.Error("customer name was not escaped")
	}
}

func TestQuotePreview_OptionalSections(t *testing.T) {
	data := previewData()
	data.UPILink = ""
	data.Terms = nil

	var buf bytes.Buffer
	if err := QuotePreview(data, PreviewLinks("QT1001")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()
	for _, frag := range []string{"Pay via UPI", "Terms &amp; Conditions", "Bank Transfer"} {
		if strings.Contains(html, frag) {
			t.Errorf("preview should not contain %q", frag)
		}
	}
}

func TestPreviewLinks_EscapesNumber(t *testing.T) {
	links := PreviewLinks("QT/1001")
	if string(links.PDF) != "/quotes/QT%2F1001/pdf" {
		t.Errorf("PDF link = %q", links.PDF)
	}
}

func TestQuotePreview_ItemColumns(t *testing.T) {
	data := previewData()
	data.Lines[0].Category = "Bedroom"
	data.Lines[0].GSTAmount = 330.75

	var buf bytes.Buffer
	if err := quoteItems(data.Lines).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()

	if got := strings.Count(html, "<th>"); got != len(services.QuoteItemHeaders) {
		t.Errorf("got %d header cells, want %d", got, len(services.QuoteItemHeaders))
	}
	if got := strings.Count(html, "<td>"); got != len(services.QuoteItemHeaders) {
		t.Errorf("got %d body cells, want %d", got, len(services.QuoteItemHeaders))
	}
	for _, frag := range []string{
		"<td>VELVET-01</td><td>Bedroom</td>",
		"<td>" + services.FormatINR(330.75) + "</td>",
		"<th>Line Total</th>",
	} {
		if !strings.Contains(html, frag) {
			t.Errorf("items table missing %q", frag)
		}
	}
}

func TestBankDetails_SkipsBlankFields(t *testing.T) {
	data := previewData()
	data.BankAccountNo = "50100123456789"
	data.BankIFSC = "HDFC0001234"

	got := bankDetails(data)
	if len(got) != 2 || got[0].Label != "Account No" || got[1].Label != "IFSC" {
		t.Errorf("bankDetails() = %+v", got)
	}
}
