package units

import (
	"fmt"

	"github.com/delivro/shipcore/pkg/shipping"
)

// Packages is an ordered collection of resolved packages sharing the same
// preset catalog and required-field policy.
type Packages struct {
	items []Package
}

// NewPackages resolves every parcel against the preset catalog and validates
// the required attributes across the whole collection. Validation never stops
// at the first problem: the returned FieldError carries one entry per missing
// attribute per parcel, keyed "parcel[index].field".
func NewPackages(parcels []shipping.Parcel, presets map[string]PackagePreset, required []string) (Packages, error) {
	items := make([]Package, 0, len(parcels))
	violations := map[string]shipping.FieldErrorCode{}

	for i, parcel := range parcels {
		// An unmatched preset name resolves to no preset; the parcel's own
		// raw values still apply and the required-field checks below catch
		// anything left unresolved.
		var preset *PackagePreset
		if p, ok := presets[parcel.PackagePreset]; ok {
			preset = &p
		}
		pkg := NewPackage(parcel, preset)

		for _, field := range required {
			key := fmt.Sprintf("parcel[%d].%s", i, field)
			switch field {
			case "weight":
				if pkg.Weight().Value() == nil {
					violations[key] = shipping.FieldErrorRequired
				}
			case "width":
				if pkg.Width().Value() == nil {
					violations[key] = shipping.FieldErrorRequired
				}
			case "height":
				if pkg.Height().Value() == nil {
					violations[key] = shipping.FieldErrorRequired
				}
			case "length":
				if pkg.Length().Value() == nil {
					violations[key] = shipping.FieldErrorRequired
				}
			case "packaging_type":
				if pkg.PackagingType() == "" {
					violations[key] = shipping.FieldErrorRequired
				}
			}
		}

		items = append(items, pkg)
	}

	if len(violations) > 0 {
		return Packages{}, shipping.NewFieldError(violations)
	}
	return Packages{items: items}, nil
}

// All returns the resolved packages in parcel order.
func (p Packages) All() []Package {
	return p.items
}

// Len returns how many packages the collection holds.
func (p Packages) Len() int {
	return len(p.items)
}

// Single returns the only package in the collection. Carriers that rate or
// ship one parcel at a time call this instead of All.
func (p Packages) Single() (Package, error) {
	if len(p.items) > 1 {
		return Package{}, shipping.ErrMultiParcelNotSupported
	}
	if len(p.items) == 0 {
		return Package{}, shipping.ErrNoParcel
	}
	return p.items[0], nil
}

// Weight sums the package weights in pounds. Packages with no effective
// weight contribute nothing; a collection with no weighted package at all
// yields a weightless result.
func (p Packages) Weight() Weight {
	total := 0.0
	found := false
	for _, pkg := range p.items {
		if lb := pkg.Weight().LB(); lb != nil {
			total += *lb
			found = true
		}
	}
	if !found {
		return NewWeightFrom(nil, LB)
	}
	return NewWeight(total, LB)
}
