// Package units implements the measurement subsystem shared by every
// carrier adapter: unit-aware scalar wrappers with lazy cross-unit
// conversion, package-preset resolution, batch validation, and the typed
// view over the shipping option bag.
//
// Measurement values are immutable after construction and conversions are
// pure functions of (value, unit). A wrapper without a value is a
// legitimate state: every conversion accessor returns nil rather than an
// error, so absent optional payload fields flow through untouched.
package units

import "github.com/shopspring/decimal"

// WeightUnit is a closed enumeration of supported weight units.
type WeightUnit string

const (
	KG WeightUnit = "KG"
	LB WeightUnit = "LB"
)

// DimensionUnit is a closed enumeration of supported dimension units.
type DimensionUnit string

const (
	CM DimensionUnit = "CM"
	IN DimensionUnit = "IN"
)

// WeightUnitOf maps a caller-supplied unit string onto the closed
// enumeration. Anything unrecognized (including empty) resolves to the
// fallback, so arbitrary payload strings never leak past this table.
func WeightUnitOf(s string, fallback WeightUnit) WeightUnit {
	switch s {
	case "KG", "kg":
		return KG
	case "LB", "lb":
		return LB
	default:
		return fallback
	}
}

// DimensionUnitOf maps a caller-supplied unit string onto the closed
// enumeration, defaulting to fallback for anything unrecognized.
func DimensionUnitOf(s string, fallback DimensionUnit) DimensionUnit {
	switch s {
	case "CM", "cm":
		return CM
	case "IN", "in":
		return IN
	default:
		return fallback
	}
}

// Conversion constants.
const (
	cmPerInch     = 2.54
	kgPerPound    = 0.453592
	poundsPerKilo = 2.204620823516057
	ouncesPerLb   = 16
	ouncesPerKg   = 35.274
)

// volumetricDivisor models the standard dimensional-weight convention
// applied to cubic-meter volumes.
const volumetricDivisor = 250

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func roundPtr(v float64) *float64 {
	r := round2(v)
	return &r
}

func coalesce(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
