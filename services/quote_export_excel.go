package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel writes the quotation into a single-sheet workbook and
// returns the file contents. Amounts are stored as numbers so the sheet can
// be re-totalled.
func GenerateQuoteExcel(data *QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := excelSheetName(data.QuotationNo)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(QuoteItemHeaders))
	widths := []float64{5, 18, 16, 14, 18, 6, 9, 12, 14, 7, 12, 14}
	for i, w := range widths {
		c, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, c, c, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10, Color: "#646464"}})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#212529"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	bodyStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header block ────────────────────────────────────────────────────

	row := 1
	mergedLine := func(value string, style int) error {
		ref := fmt.Sprintf("A%d", row)
		if err := f.MergeCell(sheet, ref, fmt.Sprintf("%s%d", lastCol, row)); err != nil {
			return fmt.Errorf("merge row %d: %w", row, err)
		}
		f.SetCellValue(sheet, ref, sanitizeExcelCell(value))
		f.SetCellStyle(sheet, ref, ref, style)
		row++
		return nil
	}

	header := []struct {
		value string
		style int
	}{
		{data.CompanyName, titleStyle},
		{joinNonEmpty([]string{data.CompanyAddress, data.CompanyPhone, data.CompanyEmail}, " | "), subtitleStyle},
		{fmtField("GSTIN", data.CompanyGSTIN), subtitleStyle},
		{fmt.Sprintf("Quotation No: %s    Date: %s", data.QuotationNo, data.Date), boldStyle},
		{"Customer: " + data.Customer.Name, boldStyle},
		{data.Customer.Address, subtitleStyle},
		{joinNonEmpty([]string{fmtField("Mobile", data.Customer.Mobile), fmtField("GSTIN", data.Customer.GSTIN)}, " | "), subtitleStyle},
	}
	for _, h := range header {
		if h.value == "" {
			continue
		}
		if err := mergedLine(h.value, h.style); err != nil {
			return nil, err
		}
	}
	row++

	// ── Items ───────────────────────────────────────────────────────────

	headerCell := fmt.Sprintf("A%d", row)
	if err := f.SetSheetRow(sheet, headerCell, &QuoteItemHeaders); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}
	f.SetCellStyle(sheet, headerCell, fmt.Sprintf("%s%d", lastCol, row), headerStyle)
	row++

	for _, line := range data.Lines {
		values := []any{
			line.Index,
			sanitizeExcelCell(line.FabricCode),
			sanitizeExcelCell(line.Category),
			line.Width,
			line.Height,
			line.Quantity,
			line.Sqft,
			line.Rate,
			line.Amount,
			FormatPercent(line.GSTPercent),
			line.GSTAmount,
			line.LineTotal,
		}
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return nil, fmt.Errorf("write line %d: %w", line.Index, err)
		}
		f.SetCellStyle(sheet, start, fmt.Sprintf("%s%d", lastCol, row), bodyStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("I%d", row), moneyStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("K%d", row), fmt.Sprintf("L%d", row), moneyStyle)
		row++
	}
	row++

	// ── Totals ──────────────────────────────────────────────────────────

	summary := func(label string, value float64) {
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("K%d", row), fmt.Sprintf("K%d", row), summaryLabelStyle)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), value)
		f.SetCellStyle(sheet, fmt.Sprintf("L%d", row), fmt.Sprintf("L%d", row), summaryValueStyle)
		row++
	}
	summary("Subtotal:", data.Subtotal)
	for _, g := range data.GSTLines {
		summary(fmt.Sprintf("GST %s:", g.Label), g.Amount)
	}
	summary("Grand Total:", data.GrandTotal)
	row++

	footer := []string{"Amount in Words: " + data.AmountInWords}
	if data.UPILink != "" {
		footer = append(footer, "UPI: "+data.UPILink)
	}
	if data.Notes != "" {
		footer = append(footer, "Notes: "+data.Notes)
	}
	for i, term := range data.Terms {
		footer = append(footer, fmt.Sprintf("%d. %s", i+1, term))
	}
	for _, line := range footer {
		if err := mergedLine(line, subtitleStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// excelSheetName makes s usable as a worksheet name: at most 31
// characters, none of []:*?/\ and never empty.
func excelSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(s))
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	if s == "" {
		s = "Quotation"
	}
	return s
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
