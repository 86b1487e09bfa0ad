package units

import "sort"

// Dimension wraps a single linear measurement with its unit. The zero value
// has no value and no unit; all accessors return nil for it.
type Dimension struct {
	value *float64
	unit  DimensionUnit
}

// NewDimension creates a dimension holding the given value.
func NewDimension(value float64, unit DimensionUnit) Dimension {
	v := value
	return Dimension{value: &v, unit: unit}
}

// NewDimensionFrom creates a dimension from an optional value; a nil value
// yields a dimension with no value.
func NewDimensionFrom(value *float64, unit DimensionUnit) Dimension {
	if value == nil {
		return Dimension{unit: unit}
	}
	return NewDimension(*value, unit)
}

// Unit returns the unit the dimension was declared in.
func (d Dimension) Unit() DimensionUnit {
	return d.unit
}

// Value returns the measurement in its own declared unit, rounded to two
// decimals, or nil when absent.
func (d Dimension) Value() *float64 {
	switch d.unit {
	case CM:
		return d.CM()
	case IN:
		return d.IN()
	default:
		return nil
	}
}

// CM returns the measurement in centimeters (1 IN = 2.54 CM).
func (d Dimension) CM() *float64 {
	if d.value == nil || d.unit == "" {
		return nil
	}
	switch d.unit {
	case CM:
		return roundPtr(*d.value)
	case IN:
		return roundPtr(*d.value * cmPerInch)
	default:
		return nil
	}
}

// IN returns the measurement in inches.
func (d Dimension) IN() *float64 {
	if d.value == nil || d.unit == "" {
		return nil
	}
	switch d.unit {
	case IN:
		return roundPtr(*d.value)
	case CM:
		return roundPtr(*d.value / cmPerInch)
	default:
		return nil
	}
}

// M returns the measurement in meters.
func (d Dimension) M() *float64 {
	cm := d.CM()
	if cm == nil {
		return nil
	}
	return roundPtr(*cm / 100)
}

// Volume is the rectangular volume spanned by three dimensions.
type Volume struct {
	side1, side2, side3 Dimension
}

// NewVolume creates a volume from three sides.
func NewVolume(side1, side2, side3 Dimension) Volume {
	return Volume{side1: side1, side2: side2, side3: side3}
}

// Value returns the volume in cubic meters, or nil when any side has no
// value.
func (v Volume) Value() *float64 {
	m1, m2, m3 := v.side1.M(), v.side2.M(), v.side3.M()
	if m1 == nil || m2 == nil || m3 == nil {
		return nil
	}
	return roundPtr(*m1 * *m2 * *m3)
}

// CubicMeter returns the volume scaled by the volumetric divisor used for
// dimensional-weight billing.
func (v Volume) CubicMeter() *float64 {
	value := v.Value()
	if value == nil {
		return nil
	}
	return roundPtr(*value * volumetricDivisor)
}

// Girth models the girth-billing formula: twice the sum of the two smallest
// sides in centimeters. The result is independent of argument order.
type Girth struct {
	side1, side2, side3 Dimension
}

// NewGirth creates a girth from three sides.
func NewGirth(side1, side2, side3 Dimension) Girth {
	return Girth{side1: side1, side2: side2, side3: side3}
}

// Value returns the girth in centimeters, or nil when any side has no value.
func (g Girth) Value() *float64 {
	c1, c2, c3 := g.side1.CM(), g.side2.CM(), g.side3.CM()
	if c1 == nil || c2 == nil || c3 == nil {
		return nil
	}
	sides := []float64{*c1, *c2, *c3}
	sort.Float64s(sides)
	return roundPtr((sides[0] + sides[1]) * 2)
}
