package services

import "fmt"

// CatalogKind names one of the master-data sheets that can be bulk imported.
type CatalogKind string

const (
	CatalogProducts  CatalogKind = "products"
	CatalogCustomers CatalogKind = "customers"
)

// ParseCatalogKind accepts "products" or "customers".
func ParseCatalogKind(s string) (CatalogKind, error) {
	switch CatalogKind(s) {
	case CatalogProducts, CatalogCustomers:
		return CatalogKind(s), nil
	}
	return "", fmt.Errorf("unknown catalogue %q (expected products or customers)", s)
}

// TemplateField describes one column in a catalogue import template.
type TemplateField struct {
	Key            string // column name on the backing sheet
	Label          string // human-readable header shown in Excel
	Description    string // shown on the Instructions sheet
	FormatRule     string // e.g. "Number", "15-char GSTIN", ""
	ExampleValue   string // shown on the Instructions sheet
	AlwaysRequired bool
}

// ProductTemplateFields returns the columns of a product import, in sheet order.
func ProductTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "name", Label: "Fabric Code", Description: "Fabric or product code as printed on quotations", ExampleValue: "VELVET-01", AlwaysRequired: true},
		{Key: "ratePerSqft", Label: "Rate per Sqft", Description: "Price in rupees per square foot", FormatRule: "Number, 0 or more", ExampleValue: "120.50", AlwaysRequired: true},
		{Key: "gstPercent", Label: "GST %", Description: "GST rate (select from dropdown)", FormatRule: "0 to 100, % sign optional", ExampleValue: "12"},
	}
}

// CustomerTemplateFields returns the columns of a customer import, in sheet order.
func CustomerTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "name", Label: "Customer Name", Description: "Person or company name", ExampleValue: "Asha Interiors", AlwaysRequired: true},
		{Key: "address", Label: "Address", Description: "Billing / site address", ExampleValue: "12 MG Road, Pune"},
		{Key: "mobile", Label: "Mobile", Description: "10-digit mobile number", FormatRule: "10 digits starting with 6-9", ExampleValue: "9876543210"},
		{Key: "gstin", Label: "GSTIN", Description: "15-character GST Identification Number", FormatRule: "Format: 22AAAAA0000A1Z5", ExampleValue: "27AAPFU0939F1ZV"},
	}
}

// CatalogTemplateFields returns the import columns for kind.
func CatalogTemplateFields(kind CatalogKind) []TemplateField {
	if kind == CatalogCustomers {
		return CustomerTemplateFields()
	}
	return ProductTemplateFields()
}

// CommonGSTRates are offered as a dropdown on the product template.
var CommonGSTRates = []string{"0", "5", "12", "18", "28"}
