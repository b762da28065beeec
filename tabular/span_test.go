package tabular

import "testing"

func TestParseSpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Span
	}{
		{"open_ended", "A2:C", Span{StartCol: 1, StartRow: 2, EndCol: 3, EndRow: 0}},
		{"single_column", "A2:A", Span{StartCol: 1, StartRow: 2, EndCol: 1, EndRow: 0}},
		{"closed_row", "A5:M5", Span{StartCol: 1, StartRow: 5, EndCol: 13, EndRow: 5}},
		{"single_cell", "B3", Span{StartCol: 2, StartRow: 3, EndCol: 2, EndRow: 3}},
		{"no_start_row", "A:C", Span{StartCol: 1, StartRow: 1, EndCol: 3, EndRow: 0}},
		{"lowercase", "a2:c4", Span{StartCol: 1, StartRow: 2, EndCol: 3, EndRow: 4}},
		{"double_letter", "AA1:AB1", Span{StartCol: 27, StartRow: 1, EndCol: 28, EndRow: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpan(tt.in)
			if err != nil {
				t.Fatalf("ParseSpan(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSpan(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSpan_Invalid(t *testing.T) {
	for _, in := range []string{"", "12", "A0", "C2:A2", "A5:A2", "A2:!"} {
		if _, err := ParseSpan(in); err == nil {
			t.Errorf("ParseSpan(%q) expected error", in)
		}
	}
}

func TestSpanStringAndWidth(t *testing.T) {
	sp, err := ParseSpan("A2:M")
	if err != nil {
		t.Fatal(err)
	}
	if sp.String() != "A2:M" {
		t.Errorf("String() = %q, want A2:M", sp.String())
	}
	if sp.Width() != 13 {
		t.Errorf("Width() = %d, want 13", sp.Width())
	}
	if got := RowSpan("A", "M", 7); got != "A7:M7" {
		t.Errorf("RowSpan = %q, want A7:M7", got)
	}
}
