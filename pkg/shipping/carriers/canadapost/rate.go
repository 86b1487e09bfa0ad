package canadapost

import (
	"encoding/xml"
	"strings"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/units"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// ============================================================================
// Rating wire structures
// ============================================================================

type mailingScenario struct {
	XMLName          xml.Name              `xml:"mailing-scenario"`
	Xmlns            string                `xml:"xmlns,attr"`
	CustomerNumber   string                `xml:"customer-number,omitempty"`
	ContractID       string                `xml:"contract-id,omitempty"`
	ParcelCharacter  parcelCharacteristics `xml:"parcel-characteristics"`
	OriginPostalCode string                `xml:"origin-postal-code"`
	Destination      destination           `xml:"destination"`
}

type parcelCharacteristics struct {
	Weight     float64     `xml:"weight"`
	Dimensions *dimensions `xml:"dimensions,omitempty"`
}

type dimensions struct {
	Length float64 `xml:"length"`
	Width  float64 `xml:"width"`
	Height float64 `xml:"height"`
}

type destination struct {
	Domestic      *domestic      `xml:"domestic,omitempty"`
	UnitedStates  *unitedStates  `xml:"united-states,omitempty"`
	International *international `xml:"international,omitempty"`
}

type domestic struct {
	PostalCode string `xml:"postal-code"`
}

type unitedStates struct {
	ZipCode string `xml:"zip-code"`
}

type international struct {
	CountryCode string `xml:"country-code"`
}

type priceQuote struct {
	ServiceCode string `xml:"service-code"`
	ServiceLink struct {
		ServiceName string `xml:"service-name"`
	} `xml:"service-link"`
	PriceDetails struct {
		Base  float64 `xml:"base"`
		Taxes struct {
			GST float64 `xml:"gst"`
			PST float64 `xml:"pst"`
			HST float64 `xml:"hst"`
		} `xml:"taxes"`
		Due         float64 `xml:"due"`
		Adjustments struct {
			Adjustment []adjustment `xml:"adjustment"`
		} `xml:"adjustments"`
	} `xml:"price-details"`
	ServiceStandard struct {
		ExpectedTransitTime  int    `xml:"expected-transit-time"`
		ExpectedDeliveryDate string `xml:"expected-delivery-date"`
	} `xml:"service-standard"`
}

// serviceNames maps Canada Post service codes onto unified service names.
var serviceNames = map[string]string{
	"DOM.RP":     "canadapost_regular_parcel",
	"DOM.EP":     "canadapost_expedited_parcel",
	"DOM.XP":     "canadapost_xpresspost",
	"DOM.PC":     "canadapost_priority",
	"USA.EP":     "canadapost_expedited_parcel_usa",
	"USA.XP":     "canadapost_xpresspost_usa",
	"INT.XP":     "canadapost_xpresspost_international",
	"INT.IP.AIR": "canadapost_international_parcel_air",
}

// Adjustment lines whose names carry these fragments are rebates applied
// by the contract, everything else is a surcharge.
var rateClassifier = shipping.ChargeClassifier{
	Discount:    []string{"SAVE", "DISC"},
	DutiesTaxes: []string{"TAX"},
}

// ============================================================================
// Rating
// ============================================================================

// CreateRateRequest builds a mailing scenario. The rating service prices
// one parcel per scenario, so multi-parcel payloads are rejected up front.
func (m *Mapper) CreateRateRequest(payload *shipping.RateRequest) (shipping.Serializable, error) {
	packages, err := units.NewPackages(payload.Parcels, packagePresets, []string{"weight"})
	if err != nil {
		return nil, err
	}
	pkg, err := packages.Single()
	if err != nil {
		return nil, err
	}

	scenario := mailingScenario{
		Xmlns:            "http://www.canadapost.ca/ws/ship/rate-v4",
		CustomerNumber:   m.settings.CustomerNumber,
		ContractID:       m.settings.ContractID,
		OriginPostalCode: normalizePostalCode(payload.Shipper.PostalCode),
	}
	if weight := pkg.Weight().KG(); weight != nil {
		scenario.ParcelCharacter.Weight = *weight
	}
	length, width, height := pkg.Length().CM(), pkg.Width().CM(), pkg.Height().CM()
	if length != nil && width != nil && height != nil {
		scenario.ParcelCharacter.Dimensions = &dimensions{
			Length: *length,
			Width:  *width,
			Height: *height,
		}
	}

	switch {
	case payload.Recipient.CountryCode == "" || payload.Recipient.CountryCode == "CA":
		scenario.Destination.Domestic = &domestic{
			PostalCode: normalizePostalCode(payload.Recipient.PostalCode),
		}
	case payload.Recipient.CountryCode == "US":
		scenario.Destination.UnitedStates = &unitedStates{
			ZipCode: payload.Recipient.PostalCode,
		}
	default:
		scenario.Destination.International = &international{
			CountryCode: payload.Recipient.CountryCode,
		}
	}

	return shipping.NewSerializable(scenario, serializeScenario), nil
}

func serializeScenario(scenario mailingScenario) string {
	out, err := xml.MarshalIndent(scenario, "", "  ")
	if err != nil {
		return ""
	}
	return xml.Header + string(out)
}

// ParseRateResponse extracts every price quote. Quotes the service marks
// due-nothing are placeholders and are dropped.
func (m *Mapper) ParseRateResponse(response *shipping.Deserializable) ([]shipping.RateDetails, []shipping.Message) {
	var rates []shipping.RateDetails
	for _, node := range response.Root.FindAll("price-quote") {
		if rate := m.extractQuote(node); rate != nil {
			rates = append(rates, *rate)
		}
	}
	return rates, parseErrorResponse(response.Root, m.Identity())
}

func (m *Mapper) extractQuote(node *xmltree.Element) *shipping.RateDetails {
	var quote priceQuote
	if err := xmltree.DecodeInto(node, &quote); err != nil {
		return nil
	}
	if quote.PriceDetails.Due == 0 {
		return nil
	}

	var charges []shipping.ChargeDetails
	for _, adj := range quote.PriceDetails.Adjustments.Adjustment {
		charges = append(charges, shipping.ChargeDetails{
			Name:     adj.Code,
			Amount:   adj.Cost,
			Currency: "CAD",
		})
	}
	discount, _, _ := rateClassifier.Classify(charges)
	taxes := quote.PriceDetails.Taxes.GST + quote.PriceDetails.Taxes.PST + quote.PriceDetails.Taxes.HST

	service := serviceNames[quote.ServiceCode]
	if service == "" {
		service = quote.ServiceLink.ServiceName
	}

	var transit *int
	if quote.ServiceStandard.ExpectedTransitTime > 0 {
		days := quote.ServiceStandard.ExpectedTransitTime
		transit = &days
	}

	id := m.Identity()
	return &shipping.RateDetails{
		CarrierName:    id.CarrierName,
		CarrierID:      id.CarrierID,
		Service:        service,
		Currency:       "CAD",
		BaseCharge:     quote.PriceDetails.Base,
		TotalCharge:    quote.PriceDetails.Due,
		Discount:       discount,
		DutiesAndTaxes: taxes,
		TransitDays:    transit,
		ExtraCharges:   charges,
	}
}

type adjustment struct {
	Code string  `xml:"adjustment-code"`
	Cost float64 `xml:"adjustment-cost"`
}

func normalizePostalCode(pc string) string {
	return strings.ReplaceAll(strings.ToUpper(pc), " ", "")
}
