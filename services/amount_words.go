package services

import (
	"math"
	"strings"
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
	hundred  = 100
)

// NumberToWords spells a rupee amount in English words on the Indian scale,
// e.g. 123456 -> "One Lakh Twenty Three Thousand Four Hundred and Fifty Six
// Rupees Only". Zero is "Zero Rupees Only".
func NumberToWords(n int64) string {
	if n == 0 {
		return "Zero Rupees Only"
	}
	if n < 0 {
		// -n overflows for math.MinInt64; the magnitude fits a uint64.
		return "Negative " + indianWords(uint64(-(n+1))+1) + " Rupees Only"
	}
	return indianWords(uint64(n)) + " Rupees Only"
}

// AmountInWords rounds amount to whole rupees and spells it. NaN counts as
// zero; amounts beyond the int64 range are clamped to it.
func AmountInWords(amount float64) string {
	r := math.Round(amount)
	switch {
	case math.IsNaN(r):
		return NumberToWords(0)
	case r >= math.MaxInt64:
		return NumberToWords(math.MaxInt64)
	case r <= math.MinInt64:
		return NumberToWords(math.MinInt64)
	}
	return NumberToWords(int64(r))
}

// indianWords returns the bare number words for n > 0. Counts of crores may
// exceed 99 and are spelled recursively.
func indianWords(n uint64) string {
	var parts []string

	if n >= crore {
		parts = append(parts, indianWords(n/crore)+" Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, under100Words(n/lakh)+" Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, under100Words(n/thousand)+" Thousand")
		n %= thousand
	}
	if n >= hundred {
		parts = append(parts, ones[n/hundred]+" Hundred")
		n %= hundred
	}

	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+under100Words(n))
		} else {
			parts = append(parts, under100Words(n))
		}
	}

	return strings.Join(parts, " ")
}

func under100Words(n uint64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
