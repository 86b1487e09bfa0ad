package canadapost

import "github.com/delivro/shipcore/pkg/shipping/units"

// packagePresets lists the Canada Post standard packaging templates.
var packagePresets = map[string]units.PackagePreset{
	"canadapost_mailing_box": {
		Width: fptr(10.2), Height: fptr(15.2), Length: fptr(1.0),
		WeightUnit: units.KG, DimensionUnit: units.CM,
	},
	"canadapost_extra_small_box": {
		Width: fptr(14.0), Height: fptr(18.5), Length: fptr(7.6),
		WeightUnit: units.KG, DimensionUnit: units.CM,
	},
	"canadapost_small_box": {
		Width: fptr(23.5), Height: fptr(13.0), Length: fptr(10.8),
		WeightUnit: units.KG, DimensionUnit: units.CM,
	},
	"canadapost_medium_box": {
		Width: fptr(31.0), Height: fptr(23.5), Length: fptr(13.3),
		WeightUnit: units.KG, DimensionUnit: units.CM,
	},
	"canadapost_large_box": {
		Width: fptr(38.1), Height: fptr(30.5), Length: fptr(9.5),
		WeightUnit: units.KG, DimensionUnit: units.CM,
	},
	"canadapost_xxl_box": {
		Width: fptr(40.0), Height: fptr(30.5), Length: fptr(21.5),
		WeightUnit: units.KG, DimensionUnit: units.CM,
	},
}

func fptr(v float64) *float64 {
	return &v
}
