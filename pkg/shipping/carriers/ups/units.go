package ups

import "github.com/delivro/shipcore/pkg/shipping/units"

// serviceCodes maps unified service names onto UPS freight service codes.
var serviceCodes = map[string]string{
	"ups_freight_ltl":            "308",
	"ups_freight_ltl_guaranteed": "309",
	"ups_freight_ltl_urgent":     "334",
	"ups_standard_ltl":           "349",
}

// The guaranteed LTL product is the rating default when the caller names
// no recognized service.
const defaultServiceCode = "309"

// packagingTypes maps unified packaging types onto UPS freight packaging
// codes.
var packagingTypes = map[string]string{
	"small_box":  "BOX",
	"pallet":     "PLT",
	"crate":      "CRT",
	"drum":       "DRM",
	"bag":        "BAG",
	"roll":       "ROL",
	"bundle":     "BDL",
	"loose":      "LOO",
}

const defaultPackagingType = "BOX"

func packagingTypeOf(packagingType string) string {
	if code, ok := packagingTypes[packagingType]; ok {
		return code
	}
	return defaultPackagingType
}

// Rate line code families reported by freight rating.
const (
	rateCodeTotal        = "AFTR_DSCNT"
	rateCodeDiscount     = "DSCNT"
	rateCodeDiscountRate = "DSCNT_RATE"
	rateCodeLandedGross  = "LND_GROSS"
)

// freightClass is the default NMFC freight class submitted with every
// commodity line.
const freightClass = 50

// packagePresets lists the UPS standard packaging templates.
var packagePresets = map[string]units.PackagePreset{
	"ups_small_express_box": {
		Width: fptr(13.0), Height: fptr(11.0), Length: fptr(2.0),
		WeightUnit: units.LB, DimensionUnit: units.IN,
		PackagingType: "small_box",
	},
	"ups_medium_express_box": {
		Width: fptr(16.0), Height: fptr(11.0), Length: fptr(3.0),
		WeightUnit: units.LB, DimensionUnit: units.IN,
		PackagingType: "small_box",
	},
	"ups_large_express_box": {
		Width: fptr(18.0), Height: fptr(13.0), Length: fptr(3.0),
		Weight:     fptr(30.0),
		WeightUnit: units.LB, DimensionUnit: units.IN,
		PackagingType: "small_box",
	},
	"ups_pallet": {
		Width: fptr(120.0), Height: fptr(100.0), Length: fptr(120.0),
		WeightUnit: units.KG, DimensionUnit: units.CM,
		PackagingType: "pallet",
	},
}

func fptr(v float64) *float64 {
	return &v
}
