package services

import (
	"math"
	"testing"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "₹0.00"},
		{"gst on one sqft", 16.2, "₹16.20"},
		{"single line", 472.5, "₹472.50"},
		{"one panel with gst", 1180, "₹1,180.00"},
		{"room", 15340.25, "₹15,340.25"},
		{"house", 236000.5, "₹2,36,000.50"},
		{"showroom", 1534000.75, "₹15,34,000.75"},
		{"crore boundary", 10000000, "₹1,00,00,000.00"},
		{"credit note", -590.5, "-₹590.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatINR(tt.amount); got != tt.want {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestApplyIndianGrouping(t *testing.T) {
	tests := map[string]string{
		"7":          "7",
		"590":        "590",
		"1180":       "1,180",
		"15340":      "15,340",
		"236000":     "2,36,000",
		"1534000":    "15,34,000",
		"10000000":   "1,00,00,000",
		"9876543210": "9,87,65,43,210",
	}
	for in, want := range tests {
		if got := applyIndianGrouping(in); got != want {
			t.Errorf("applyIndianGrouping(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRupees_WholeUnits(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "₹0"},
		{"drops_paise_down", 1234.49, "₹1,234"},
		{"rounds_half_up", 1234.50, "₹1,235"},
		{"two_decimals", 99.99, "₹100"},
		{"lakhs", 123456.78, "₹1,23,457"},
		{"crores", 12345678.90, "₹1,23,45,679"},
		{"negative", -2500.4, "-₹2,500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRupees(tt.input)
			if got != tt.expect {
				t.Errorf("FormatRupees(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatPercentAndSqft(t *testing.T) {
	if got := FormatPercent(18); got != "18%" {
		t.Errorf("FormatPercent(18) = %q", got)
	}
	if got := FormatPercent(2.5); got != "2.5%" {
		t.Errorf("FormatPercent(2.5) = %q", got)
	}
	if got := FormatSqft(12.5); got != "12.5" {
		t.Errorf("FormatSqft(12.5) = %q", got)
	}
	if got := FormatSqft(1.0); got != "1" {
		t.Errorf("FormatSqft(1) = %q", got)
	}
}

func TestFormatRupees_OutOfRange(t *testing.T) {
	if got := FormatRupees(1e20); got != "₹10,00,00,00,00,00,00,00,00,000" {
		t.Errorf("FormatRupees(1e20) = %q", got)
	}
	if got := FormatRupees(math.Inf(1)); got != "₹+Inf" {
		t.Errorf("FormatRupees(+Inf) = %q", got)
	}
	if got := FormatRupees(math.NaN()); got != "₹NaN" {
		t.Errorf("FormatRupees(NaN) = %q", got)
	}
}
