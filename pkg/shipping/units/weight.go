package units

// Weight wraps a single mass measurement with its unit. The zero value has
// no value and no unit; all accessors return nil for it.
type Weight struct {
	value *float64
	unit  WeightUnit
}

// NewWeight creates a weight holding the given value.
func NewWeight(value float64, unit WeightUnit) Weight {
	v := value
	return Weight{value: &v, unit: unit}
}

// NewWeightFrom creates a weight from an optional value; a nil value yields
// a weight with no value.
func NewWeightFrom(value *float64, unit WeightUnit) Weight {
	if value == nil {
		return Weight{unit: unit}
	}
	return NewWeight(*value, unit)
}

// Unit returns the unit the weight was declared in.
func (w Weight) Unit() WeightUnit {
	return w.unit
}

// Value returns the weight in its own declared unit, rounded to two
// decimals, or nil when absent.
func (w Weight) Value() *float64 {
	switch w.unit {
	case KG:
		return w.KG()
	case LB:
		return w.LB()
	default:
		return nil
	}
}

// KG returns the weight in kilograms (1 LB = 0.453592 KG).
func (w Weight) KG() *float64 {
	if w.value == nil || w.unit == "" {
		return nil
	}
	switch w.unit {
	case KG:
		return roundPtr(*w.value)
	case LB:
		return roundPtr(*w.value * kgPerPound)
	default:
		return nil
	}
}

// LB returns the weight in pounds (1 KG = 2.204620823516057 LB).
func (w Weight) LB() *float64 {
	if w.value == nil || w.unit == "" {
		return nil
	}
	switch w.unit {
	case LB:
		return roundPtr(*w.value)
	case KG:
		return roundPtr(*w.value * poundsPerKilo)
	default:
		return nil
	}
}

// OZ returns the weight in ounces (1 LB = 16 OZ, 1 KG = 35.274 OZ).
func (w Weight) OZ() *float64 {
	if w.value == nil || w.unit == "" {
		return nil
	}
	switch w.unit {
	case LB:
		return roundPtr(*w.value * ouncesPerLb)
	case KG:
		return roundPtr(*w.value * ouncesPerKg)
	default:
		return nil
	}
}
