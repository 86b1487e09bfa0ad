package units

import "github.com/delivro/shipcore/pkg/shipping"

// PackagePreset is a named template of fixed physical attributes for a
// carrier's standard box or envelope.
type PackagePreset struct {
	Width         *float64
	Height        *float64
	Length        *float64
	Weight        *float64
	WeightUnit    WeightUnit    // defaults to LB
	DimensionUnit DimensionUnit // defaults to IN
	PackagingType string
}

func (p PackagePreset) weightUnit() WeightUnit {
	if p.WeightUnit == "" {
		return LB
	}
	return p.WeightUnit
}

func (p PackagePreset) dimensionUnit() DimensionUnit {
	if p.DimensionUnit == "" {
		return IN
	}
	return p.DimensionUnit
}

// Package merges a caller parcel with an optional named preset and exposes
// the effective physical attributes as on-demand computed values. For every
// attribute the preset's fixed value wins over the raw parcel value; the
// unit is the parcel's declared unit only when the parcel itself supplies a
// raw value for that attribute, otherwise the preset's unit applies.
type Package struct {
	Parcel shipping.Parcel
	Preset PackagePreset
}

// NewPackage resolves a parcel against a preset. A nil preset leaves the
// hard defaults (LB/IN) in place.
func NewPackage(parcel shipping.Parcel, preset *PackagePreset) Package {
	pkg := Package{Parcel: parcel}
	if preset != nil {
		pkg.Preset = *preset
	}
	return pkg
}

// DimensionUnit returns the effective dimension unit for the package.
func (p Package) DimensionUnit() DimensionUnit {
	hasRaw := p.Parcel.Width != nil || p.Parcel.Height != nil || p.Parcel.Length != nil
	if hasRaw && p.Parcel.DimensionUnit != "" {
		return DimensionUnitOf(p.Parcel.DimensionUnit, p.Preset.dimensionUnit())
	}
	return p.Preset.dimensionUnit()
}

// WeightUnit returns the effective weight unit for the package.
func (p Package) WeightUnit() WeightUnit {
	if p.Parcel.Weight != nil && p.Parcel.WeightUnit != "" {
		return WeightUnitOf(p.Parcel.WeightUnit, p.Preset.weightUnit())
	}
	return p.Preset.weightUnit()
}

// PackagingType returns the effective packaging type.
func (p Package) PackagingType() string {
	if p.Parcel.PackagingType != "" {
		return p.Parcel.PackagingType
	}
	return p.Preset.PackagingType
}

// Weight returns the effective weight.
func (p Package) Weight() Weight {
	return NewWeightFrom(coalesce(p.Preset.Weight, p.Parcel.Weight), p.WeightUnit())
}

// Width returns the effective width.
func (p Package) Width() Dimension {
	return NewDimensionFrom(coalesce(p.Preset.Width, p.Parcel.Width), p.DimensionUnit())
}

// Height returns the effective height.
func (p Package) Height() Dimension {
	return NewDimensionFrom(coalesce(p.Preset.Height, p.Parcel.Height), p.DimensionUnit())
}

// Length returns the effective length.
func (p Package) Length() Dimension {
	return NewDimensionFrom(coalesce(p.Preset.Length, p.Parcel.Length), p.DimensionUnit())
}

// Girth returns the billing girth spanned by the package sides.
func (p Package) Girth() Girth {
	return NewGirth(p.Width(), p.Length(), p.Height())
}

// Volume returns the volume spanned by the package sides.
func (p Package) Volume() Volume {
	return NewVolume(p.Width(), p.Length(), p.Height())
}
