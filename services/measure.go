package services

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit of a width or height.
type Unit string

const (
	UnitInch Unit = "inch"
	UnitCM   Unit = "cm"
	UnitFeet Unit = "feet"
)

// HemAllowanceInches is added to the converted height when an item asks for
// the hem allowance.
const HemAllowanceInches = 6.0

const (
	inchesPerCM   = 0.393701
	inchesPerFoot = 12.0
	sqInchPerSqft = 144.0
)

// Units lists the accepted measurement units in display order.
func Units() []Unit {
	return []Unit{UnitInch, UnitCM, UnitFeet}
}

// Valid reports whether u is one of the accepted units.
func (u Unit) Valid() bool {
	return slices.Contains(Units(), u)
}

// ToInches converts value from unit to inches. Unknown units are taken as
// inches.
func ToInches(value float64, unit Unit) float64 {
	switch unit {
	case UnitCM:
		return value * inchesPerCM
	case UnitFeet:
		return value * inchesPerFoot
	default:
		return value
	}
}

// ComputeArea returns the billable area in square feet, rounded to 3 decimal
// places. Width and height are converted to inches independently and the hem
// allowance is added to the converted height. Negative dimensions count as
// zero, so the result is never negative.
func ComputeArea(width, height float64, unit Unit, addHem bool) float64 {
	w := ToInches(max(width, 0), unit)
	h := ToInches(max(height, 0), unit)
	if addHem {
		h += HemAllowanceInches
	}

	area := (w * h) / sqInchPerSqft
	if area < 0 || math.IsNaN(area) {
		area = 0
	}
	return round(area, 3)
}

// round rounds half away from zero. NaN and infinities are returned as is.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
