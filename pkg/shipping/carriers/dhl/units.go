package dhl

import (
	"strings"

	"github.com/delivro/shipcore/pkg/shipping/units"
)

// ============================================================================
// DHL code tables
// ============================================================================

// serviceCodes maps unified service names onto DCT global product codes.
var serviceCodes = map[string]string{
	"dhl_express_worldwide_doc":    "D",
	"dhl_express_worldwide_nondoc": "P",
	"dhl_express_easy_doc":         "O",
	"dhl_express_easy_nondoc":      "C",
	"dhl_express_1200_doc":         "T",
	"dhl_express_1200_nondoc":      "Y",
	"dhl_economy_select_doc":       "H",
	"dhl_economy_select_nondoc":    "W",
}

// productNames maps DHL local product names back onto unified service
// names. Matching is by substring because the gateway decorates product
// names with regional suffixes.
var productNames = map[string]string{
	"EXPRESS WORLDWIDE": "dhl_express_worldwide",
	"EXPRESS EASY":      "dhl_express_easy",
	"EXPRESS 12:00":     "dhl_express_1200",
	"ECONOMY SELECT":    "dhl_economy_select",
	"EXPRESS ENVELOPE":  "dhl_express_envelope",
}

// serviceNameOf resolves the unified service name for a DHL local product
// name, falling back to the raw product name when no table entry matches.
func serviceNameOf(localProductName string) string {
	for needle, name := range productNames {
		if strings.Contains(localProductName, needle) {
			return name
		}
	}
	return localProductName
}

// packageTypes maps unified packaging types onto DCT package type codes.
// Unknown types fall back to customer-supplied packaging.
var packageTypes = map[string]string{
	"dhl_flyer":        "FLY",
	"dhl_express_box":  "BOX",
	"dhl_express_tube": "TBL",
	"dhl_pallet":       "PAL",
	"your_packaging":   "YP",
}

const defaultPackageType = "YP"

func packageTypeOf(packagingType string) string {
	if code, ok := packageTypes[packagingType]; ok {
		return code
	}
	return defaultPackageType
}

// specialServiceCodes maps recognized option keys onto DCT special service
// codes. Option keys outside this table are carrier-specific passthroughs
// with no DCT equivalent.
var specialServiceCodes = map[string]string{
	"cash_on_delivery":    "KB",
	"insurance":           "II",
	"notification":        "JA",
	"dhl_paperless_trade": "WY",
	"dhl_saturday":        "AA",
}

const paperlessTradeCode = "WY"

// networkTypeBoth requests both time-definite and day-definite products
// from the DCT quote service.
const networkTypeBoth = "AL"

// packagePresets lists the DHL standard packaging templates.
var packagePresets = map[string]units.PackagePreset{
	"dhl_express_envelope": {
		Width: fptr(35.0), Height: fptr(27.5), Length: fptr(1.0),
		Weight:     fptr(0.5),
		WeightUnit: units.KG, DimensionUnit: units.CM,
		PackagingType: "dhl_flyer",
	},
	"dhl_express_box_2": {
		Width: fptr(34.0), Height: fptr(18.0), Length: fptr(10.0),
		Weight:     fptr(1.0),
		WeightUnit: units.KG, DimensionUnit: units.CM,
		PackagingType: "dhl_express_box",
	},
	"dhl_express_box_3": {
		Width: fptr(33.7), Height: fptr(32.2), Length: fptr(18.0),
		Weight:     fptr(2.0),
		WeightUnit: units.KG, DimensionUnit: units.CM,
		PackagingType: "dhl_express_box",
	},
	"dhl_express_tube": {
		Width: fptr(97.5), Height: fptr(15.0), Length: fptr(15.0),
		Weight:     fptr(5.0),
		WeightUnit: units.KG, DimensionUnit: units.CM,
		PackagingType: "dhl_express_tube",
	},
	"dhl_jumbo_box": {
		Width: fptr(45.0), Height: fptr(42.7), Length: fptr(33.0),
		Weight:     fptr(30.0),
		WeightUnit: units.KG, DimensionUnit: units.CM,
		PackagingType: "dhl_express_box",
	},
}

// countryRegions maps ISO country codes onto DHL region codes. Countries
// not listed fall back to the Americas region, matching gateway behavior
// for unrecognized origins.
var countryRegions = map[string]string{
	"US": "AM", "CA": "AM", "MX": "AM", "BR": "AM",
	"GB": "EU", "DE": "EU", "FR": "EU", "NL": "EU", "ES": "EU", "IT": "EU",
	"CN": "AP", "JP": "AP", "SG": "AP", "AU": "AP", "IN": "AP",
}

const defaultRegion = "AM"

func regionOf(countryCode string) string {
	if region, ok := countryRegions[countryCode]; ok {
		return region
	}
	return defaultRegion
}

func fptr(v float64) *float64 {
	return &v
}
