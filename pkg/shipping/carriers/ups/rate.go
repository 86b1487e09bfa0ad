package ups

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/soap"
	"github.com/delivro/shipcore/pkg/shipping/units"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// ============================================================================
// Freight rate request
// ============================================================================

var securityTemplate = template.Must(template.New("security").Parse(
	`<tns:UPSSecurity>
  <upss:UsernameToken>
    <upss:Username>{{.Username}}</upss:Username>
    <upss:Password>{{.Password}}</upss:Password>
  </upss:UsernameToken>
  <upss:ServiceAccessToken>
    <upss:AccessLicenseNumber>{{.AccessLicense}}</upss:AccessLicenseNumber>
  </upss:ServiceAccessToken>
</tns:UPSSecurity>`))

var rateBodyTemplate = template.Must(template.New("rate").Parse(
	`<tns:FreightRateRequest>
  <common:Request>
    <common:RequestOption>1</common:RequestOption>
    <common:TransactionReference>
      <common:TransactionIdentifier>{{.Reference}}</common:TransactionIdentifier>
    </common:TransactionReference>
  </common:Request>
  <frt:ShipFrom>
    <frt:Name>{{.Shipper.CompanyName}}</frt:Name>
    <frt:AttentionName>{{.Shipper.PersonName}}</frt:AttentionName>
    <frt:Address>
      <frt:AddressLine>{{.ShipperAddressLine}}</frt:AddressLine>
      <frt:City>{{.Shipper.City}}</frt:City>
      <frt:StateProvinceCode>{{.Shipper.StateCode}}</frt:StateProvinceCode>
      <frt:PostalCode>{{.Shipper.PostalCode}}</frt:PostalCode>
      <frt:CountryCode>{{.Shipper.CountryCode}}</frt:CountryCode>
    </frt:Address>
  </frt:ShipFrom>
  <frt:ShipTo>
    <frt:Name>{{.Recipient.CompanyName}}</frt:Name>
    <frt:AttentionName>{{.Recipient.PersonName}}</frt:AttentionName>
    <frt:Address>
      <frt:AddressLine>{{.RecipientAddressLine}}</frt:AddressLine>
      <frt:City>{{.Recipient.City}}</frt:City>
      <frt:StateProvinceCode>{{.Recipient.StateCode}}</frt:StateProvinceCode>
      <frt:PostalCode>{{.Recipient.PostalCode}}</frt:PostalCode>
      <frt:CountryCode>{{.Recipient.CountryCode}}</frt:CountryCode>
    </frt:Address>
  </frt:ShipTo>
  <frt:Service>
    <frt:Code>{{.ServiceCode}}</frt:Code>
  </frt:Service>
  <frt:HandlingUnitOne>
    <frt:Quantity>1</frt:Quantity>
    <frt:Type>
      <frt:Code>SKD</frt:Code>
    </frt:Type>
  </frt:HandlingUnitOne>
{{- range .Commodities}}
  <frt:Commodity>
    <frt:Description>{{.Description}}</frt:Description>
    <frt:Weight>
      <frt:UnitOfMeasurement>
        <frt:Code>{{.WeightUnit}}</frt:Code>
      </frt:UnitOfMeasurement>
      <frt:Value>{{.Weight}}</frt:Value>
    </frt:Weight>
{{- if .HasDimensions}}
    <frt:Dimensions>
      <frt:UnitOfMeasurement>
        <frt:Code>{{.DimensionUnit}}</frt:Code>
      </frt:UnitOfMeasurement>
      <frt:Length>{{.Length}}</frt:Length>
      <frt:Width>{{.Width}}</frt:Width>
      <frt:Height>{{.Height}}</frt:Height>
    </frt:Dimensions>
{{- end}}
    <frt:NumberOfPieces>1</frt:NumberOfPieces>
    <frt:PackagingType>
      <frt:Code>{{.PackagingType}}</frt:Code>
    </frt:PackagingType>
    <frt:FreightClass>{{.FreightClass}}</frt:FreightClass>
  </frt:Commodity>
{{- end}}
  <frt:DensityEligibleIndicator/>
  <frt:AdjustedWeightIndicator/>
  <frt:TimeInTransitIndicator/>
</tns:FreightRateRequest>`))

type commodityData struct {
	Description   string
	Weight        float64
	WeightUnit    string
	HasDimensions bool
	Length        float64
	Width         float64
	Height        float64
	DimensionUnit string
	PackagingType string
	FreightClass  int
}

type rateRequestData struct {
	Reference            string
	Shipper              shipping.Address
	Recipient            shipping.Address
	ShipperAddressLine   string
	RecipientAddressLine string
	ServiceCode          string
	Commodities          []commodityData
}

// CreateRateRequest builds a freight rate SOAP envelope. The envelope is
// serialized with the shared prefix and the security and body children are
// rewritten to the prefixes the freight gateway expects.
func (m *Mapper) CreateRateRequest(payload *shipping.RateRequest) (shipping.Serializable, error) {
	packages, err := units.NewPackages(payload.Parcels, packagePresets, []string{"weight"})
	if err != nil {
		return nil, err
	}

	serviceCode := defaultServiceCode
	for _, svc := range payload.Services {
		if code, ok := serviceCodes[svc]; ok {
			serviceCode = code
			break
		}
	}

	var commodities []commodityData
	for _, pkg := range packages.All() {
		description := pkg.Parcel.Description
		if description == "" {
			description = "..."
		}
		data := commodityData{
			Description:   description,
			WeightUnit:    string(pkg.WeightUnit()),
			PackagingType: packagingTypeOf(pkg.PackagingType()),
			FreightClass:  freightClass,
		}
		if weight := pkg.Weight().Value(); weight != nil {
			data.Weight = *weight
		}
		length, width, height := pkg.Length().Value(), pkg.Width().Value(), pkg.Height().Value()
		if length != nil && width != nil && height != nil {
			data.HasDimensions = true
			data.Length = *length
			data.Width = *width
			data.Height = *height
			data.DimensionUnit = string(pkg.DimensionUnit())
		}
		commodities = append(commodities, data)
	}

	reference := payload.Reference
	if reference == "" {
		reference = "TransactionIdentifier"
	}
	data := rateRequestData{
		Reference:            reference,
		Shipper:              payload.Shipper,
		Recipient:            payload.Recipient,
		ShipperAddressLine:   addressLine(payload.Shipper),
		RecipientAddressLine: addressLine(payload.Recipient),
		ServiceCode:          serviceCode,
		Commodities:          commodities,
	}

	return shipping.NewSerializable(data, m.serializeRateRequest), nil
}

func (m *Mapper) serializeRateRequest(data rateRequestData) string {
	var header, body bytes.Buffer
	if err := securityTemplate.Execute(&header, m.settings); err != nil {
		return ""
	}
	if err := rateBodyTemplate.Execute(&body, data); err != nil {
		return ""
	}

	envelope := soap.CreateEnvelope(
		shipping.NewSerializable(body.String(), nil),
		soap.WithHeader(shipping.NewSerializable(header.String(), nil)),
		soap.WithNamespace("upss", "http://www.ups.com/XMLSchema/XOLTWS/UPSS/v1.0"),
		soap.WithNamespace("wsf", "http://www.ups.com/schema/wsf"),
		soap.WithNamespace("common", "http://www.ups.com/XMLSchema/XOLTWS/Common/v1.0"),
		soap.WithNamespace("frt", "http://www.ups.com/XMLSchema/XOLTWS/FreightRate/v1.0"),
	)

	return soap.CleanNamespaces(
		envelope.Serialize(),
		"tns:",
		"FreightRateRequest",
		"UPSSecurity",
		"upss:",
		"frt:",
	)
}

func addressLine(address shipping.Address) string {
	parts := []string{}
	if address.AddressLine1 != "" {
		parts = append(parts, address.AddressLine1)
	}
	if address.AddressLine2 != "" {
		parts = append(parts, address.AddressLine2)
	}
	return strings.Join(parts, " ")
}

// ============================================================================
// Freight rate response
// ============================================================================

type freightRateDetail struct {
	Service struct {
		Code        string `xml:"Code"`
		Description string `xml:"Description"`
	} `xml:"Service"`
	TotalShipmentCharge struct {
		CurrencyCode  string  `xml:"CurrencyCode"`
		MonetaryValue float64 `xml:"MonetaryValue"`
	} `xml:"TotalShipmentCharge"`
	Rate []freightRateLine `xml:"Rate"`
}

type freightRateLine struct {
	Type struct {
		Code string `xml:"Code"`
	} `xml:"Type"`
	Factor struct {
		Value             float64 `xml:"Value"`
		UnitOfMeasurement struct {
			Code string `xml:"Code"`
		} `xml:"UnitOfMeasurement"`
	} `xml:"Factor"`
}

// ParseRateResponse extracts the freight rate detail from a SOAP response.
// The rate lines are coded, not named: the classification is by exact code
// because the code families overlap as substrings (DSCNT, AFTR_DSCNT,
// DSCNT_RATE).
func (m *Mapper) ParseRateResponse(response *shipping.Deserializable) ([]shipping.RateDetails, []shipping.Message) {
	var rates []shipping.RateDetails
	for _, node := range response.Root.FindAll("FreightRateResponse") {
		if rate := m.extractRate(node); rate != nil {
			rates = append(rates, *rate)
		}
	}
	return rates, parseErrorResponse(response.Root, m.Identity())
}

func (m *Mapper) extractRate(node *xmltree.Element) *shipping.RateDetails {
	var detail freightRateDetail
	if err := xmltree.DecodeInto(node, &detail); err != nil {
		return nil
	}

	var total float64
	var discounts, surcharges []shipping.ChargeDetails
	var discountSum, surchargeSum float64
	for _, line := range detail.Rate {
		charge := shipping.ChargeDetails{
			Name:     line.Type.Code,
			Amount:   line.Factor.Value,
			Currency: line.Factor.UnitOfMeasurement.Code,
		}
		switch line.Type.Code {
		case rateCodeTotal:
			total = line.Factor.Value
		case rateCodeDiscount:
			discounts = append(discounts, charge)
			discountSum += line.Factor.Value
		case rateCodeDiscountRate, rateCodeLandedGross:
			// Informational lines, not charges.
		default:
			surcharges = append(surcharges, charge)
			surchargeSum += line.Factor.Value
		}
	}
	if total == 0 {
		return nil
	}

	currency := node.TextOf("CurrencyCode")
	id := m.Identity()
	return &shipping.RateDetails{
		CarrierName:    id.CarrierName,
		CarrierID:      id.CarrierID,
		Service:        detail.Service.Description,
		Currency:       currency,
		BaseCharge:     detail.TotalShipmentCharge.MonetaryValue,
		TotalCharge:    total,
		Discount:       discountSum,
		DutiesAndTaxes: surchargeSum,
		ExtraCharges:   append(discounts, surcharges...),
	}
}
