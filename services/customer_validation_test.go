package services

import (
	"testing"
)

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty is valid", "", true},
		{"whitespace only is valid", "   ", true},
		{"valid GSTIN", "27AAPFU0939F1ZV", true},
		{"valid GSTIN lowercase auto-uppercased", "27aapfu0939f1zv", true},
		{"valid GSTIN with leading/trailing spaces", "  27AAPFU0939F1ZV  ", true},
		{"too short", "27AAPFU0939F1Z", false},
		{"too long", "27AAPFU0939F1ZVX", false},
		{"invalid chars", "27AAPFU0939F1Z!", false},
		{"wrong structure - missing Z", "27AAPFU0939F1AV", false},
		{"all zeros", "000000000000000", false},
		{"first two not digits", "AAAAPFU0939F1ZV", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateGSTIN(tt.input)
			if got != tt.want {
				t.Errorf("ValidateGSTIN(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty is valid", "", true},
		{"valid mobile", "9876543210", true},
		{"country prefix", "+91 98765 43210", true},
		{"trunk prefix", "09876543210", true},
		{"dashes", "98765-43210", true},
		{"starts with 5", "5876543210", false},
		{"too short", "987654321", false},
		{"letters", "98765abcde", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePhone(tt.input)
			if got != tt.want {
				t.Errorf("ValidatePhone(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCustomerValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Customer
		wantErr bool
	}{
		{"name only", Customer{Name: "Asha Interiors"}, false},
		{"all fields", Customer{Name: "Asha", Address: "Pune", Mobile: "9876543210", GSTIN: "27AAPFU0939F1ZV"}, false},
		{"missing name", Customer{Mobile: "9876543210"}, true},
		{"bad mobile", Customer{Name: "Asha", Mobile: "12345"}, true},
		{"bad gstin", Customer{Name: "Asha", GSTIN: "XYZ"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProductValidate(t *testing.T) {
	if err := (Product{Name: "Velvet", RatePerSqft: 120, GSTPercent: 12}).Validate(); err != nil {
		t.Errorf("valid product: %v", err)
	}
	if err := (Product{RatePerSqft: 120}).Validate(); err == nil {
		t.Error("expected error for missing name")
	}
	if err := (Product{Name: "Velvet", RatePerSqft: -1}).Validate(); err == nil {
		t.Error("expected error for negative rate")
	}
	if err := (Product{Name: "Velvet", GSTPercent: 180}).Validate(); err == nil {
		t.Error("expected error for GST above 100")
	}
}
