package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RegisterColumn defines a column in the quotation register spreadsheet.
type RegisterColumn struct {
	Header string
	Width  float64
	Value  func(Quote) any
}

// RegisterColumns returns the columns of the quotation register.
func RegisterColumns() []RegisterColumn {
	return []RegisterColumn{
		{Header: "Quotation No", Width: 14, Value: func(q Quote) any { return q.QuotationNo }},
		{Header: "Date", Width: 12, Value: func(q Quote) any { return q.DateISO }},
		{Header: "Customer", Width: 30, Value: func(q Quote) any { return sanitizeExcelCell(q.Customer.Name) }},
		{Header: "Mobile", Width: 14, Value: func(q Quote) any { return q.Customer.Mobile }},
		{Header: "GSTIN", Width: 18, Value: func(q Quote) any { return q.Customer.GSTIN }},
		{Header: "Items", Width: 8, Value: func(q Quote) any { return len(q.Items) }},
		{Header: "Subtotal", Width: 14, Value: func(q Quote) any { return q.Subtotal }},
		{Header: "GST", Width: 12, Value: func(q Quote) any { return q.TotalGST }},
		{Header: "Grand Total", Width: 14, Value: func(q Quote) any { return q.GrandTotal }},
		{Header: "Updated", Width: 22, Value: func(q Quote) any { return q.UpdatedAt }},
	}
}

// GenerateQuoteRegister lists quotes one per row, under a title and a
// count line, with totals summed at the bottom.
func GenerateQuoteRegister(title string, quotes []Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Quotations"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}
	moneyFmt := "#,##0.00"
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	columns := RegisterColumns()
	letters := columnLetters(len(columns))
	lastCol := letters[len(letters)-1]
	for i, col := range columns {
		f.SetColWidth(sheetName, letters[i], letters[i], col.Width)
	}

	// --- Row 1: Title ---
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// --- Row 2: Count ---
	f.MergeCell(sheetName, "A2", lastCol+"2")
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Total: %d quotations", len(quotes)))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// --- Row 4: Column headers ---
	for i, col := range columns {
		f.SetCellValue(sheetName, letters[i]+"4", col.Header)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      4,
		TopLeftCell: "A5",
		ActivePane:  "bottomLeft",
	})

	// --- Data rows starting at row 5 ---
	var totals Totals
	for rowIdx, q := range quotes {
		rowStr := fmt.Sprintf("%d", rowIdx+5)
		for colIdx, col := range columns {
			f.SetCellValue(sheetName, letters[colIdx]+rowStr, col.Value(q))
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, dataStyle)
		totals.Subtotal += q.Subtotal
		totals.TotalGST += q.TotalGST
		totals.GrandTotal += q.GrandTotal
	}

	if len(quotes) > 0 {
		rowStr := fmt.Sprintf("%d", len(quotes)+6)
		f.SetCellValue(sheetName, "F"+rowStr, "Total")
		f.SetCellValue(sheetName, "G"+rowStr, totals.Subtotal)
		f.SetCellValue(sheetName, "H"+rowStr, totals.TotalGST)
		f.SetCellValue(sheetName, "I"+rowStr, totals.GrandTotal)
		f.SetCellStyle(sheetName, "F"+rowStr, "I"+rowStr, totalStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}
