package dhl

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/units"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// ============================================================================
// DCT quote wire structures
// ============================================================================

type dctRequest struct {
	XMLName     xml.Name `xml:"p:DCTRequest"`
	NSP         string   `xml:"xmlns:p,attr"`
	NSDatatypes string   `xml:"xmlns:p1,attr"`
	NSRequest   string   `xml:"xmlns:p2,attr"`
	GetQuote    getQuote `xml:"GetQuote"`
}

type getQuote struct {
	Request    requestHeader `xml:"Request"`
	From       dctAddress    `xml:"From"`
	BkgDetails bkgDetails    `xml:"BkgDetails"`
	To         dctAddress    `xml:"To"`
	Dutiable   *dctDutiable  `xml:"Dutiable,omitempty"`
}

type requestHeader struct {
	ServiceHeader serviceHeader `xml:"ServiceHeader"`
	MetaData      metaData      `xml:"MetaData"`
}

type serviceHeader struct {
	MessageTime      string `xml:"MessageTime"`
	MessageReference string `xml:"MessageReference"`
	SiteID           string `xml:"SiteID"`
	Password         string `xml:"Password"`
}

type metaData struct {
	SoftwareName    string `xml:"SoftwareName"`
	SoftwareVersion string `xml:"SoftwareVersion"`
}

type dctAddress struct {
	CountryCode string `xml:"CountryCode"`
	Postalcode  string `xml:"Postalcode"`
	City        string `xml:"City,omitempty"`
	Suburb      string `xml:"Suburb,omitempty"`
}

type bkgDetails struct {
	PaymentCountryCode   string     `xml:"PaymentCountryCode"`
	Date                 string     `xml:"Date"`
	ReadyTime            string     `xml:"ReadyTime"`
	DimensionUnit        string     `xml:"DimensionUnit"`
	WeightUnit           string     `xml:"WeightUnit"`
	NumberOfPieces       int        `xml:"NumberOfPieces"`
	ShipmentWeight       *float64   `xml:"ShipmentWeight,omitempty"`
	Pieces               pieces     `xml:"Pieces"`
	PaymentAccountNumber string     `xml:"PaymentAccountNumber,omitempty"`
	IsDutiable           string     `xml:"IsDutiable"`
	NetworkTypeCode      string     `xml:"NetworkTypeCode"`
	QtdShp               []qtdShp   `xml:"QtdShp"`
	InsuredValue         *float64   `xml:"InsuredValue,omitempty"`
	InsuredCurrency      string     `xml:"InsuredCurrency,omitempty"`
}

type pieces struct {
	Piece []piece `xml:"Piece"`
}

type piece struct {
	PieceID         string   `xml:"PieceID"`
	PackageTypeCode string   `xml:"PackageTypeCode"`
	Height          *float64 `xml:"Height,omitempty"`
	Depth           *float64 `xml:"Depth,omitempty"`
	Width           *float64 `xml:"Width,omitempty"`
	Weight          *float64 `xml:"Weight,omitempty"`
}

type qtdShp struct {
	GlobalProductCode string         `xml:"GlobalProductCode"`
	LocalProductCode  string         `xml:"LocalProductCode"`
	QtdShpExChrg      []qtdShpExChrg `xml:"QtdShpExChrg,omitempty"`
}

type qtdShpExChrg struct {
	SpecialServiceType string `xml:"SpecialServiceType"`
}

type dctDutiable struct {
	DeclaredCurrency string  `xml:"DeclaredCurrency"`
	DeclaredValue    float64 `xml:"DeclaredValue"`
}

func (s Settings) requestHeader(softwareName string) requestHeader {
	return requestHeader{
		ServiceHeader: serviceHeader{
			MessageTime:      time.Now().Format(time.RFC3339),
			MessageReference: uuid.NewString(),
			SiteID:           s.SiteID,
			Password:         s.Password,
		},
		MetaData: metaData{SoftwareName: softwareName, SoftwareVersion: "1.0"},
	}
}

// ============================================================================
// Rating
// ============================================================================

// CreateRateRequest builds a DCT quote request. Validation happens here,
// before any network traffic: every missing parcel attribute is reported at
// once.
func (m *Mapper) CreateRateRequest(payload *shipping.RateRequest) (shipping.Serializable, error) {
	packages, err := units.NewPackages(payload.Parcels, packagePresets, []string{"weight"})
	if err != nil {
		return nil, err
	}
	options := units.NewOptions(payload.Options)

	isInternational := payload.Shipper.CountryCode != payload.Recipient.CountryCode
	isDocument := true
	for _, parcel := range payload.Parcels {
		if !parcel.IsDocument {
			isDocument = false
			break
		}
	}
	isDutiable := !isDocument

	var products []string
	for _, svc := range payload.Services {
		if code, ok := serviceCodes[svc]; ok {
			products = append(products, code)
		}
	}
	if len(products) == 0 {
		products = []string{defaultProduct(isInternational, isDocument)}
	}

	var specialServices []string
	for key := range options.Raw() {
		if code, ok := specialServiceCodes[key]; ok {
			specialServices = append(specialServices, code)
		}
	}
	if isInternational && isDutiable {
		specialServices = append(specialServices, paperlessTradeCode)
	}

	var requestedShipments []qtdShp
	for _, product := range products {
		shipment := qtdShp{GlobalProductCode: product, LocalProductCode: product}
		for _, service := range specialServices {
			shipment.QtdShpExChrg = append(shipment.QtdShpExChrg, qtdShpExChrg{SpecialServiceType: service})
		}
		requestedShipments = append(requestedShipments, shipment)
	}

	var pieceList []piece
	for index, pkg := range packages.All() {
		id := pkg.Parcel.ID
		if id == "" {
			id = strconv.Itoa(index + 1)
		}
		pieceList = append(pieceList, piece{
			PieceID:         id,
			PackageTypeCode: packageTypeOf(pkg.PackagingType()),
			Depth:           pkg.Length().IN(),
			Width:           pkg.Width().IN(),
			Height:          pkg.Height().IN(),
			Weight:          pkg.Weight().LB(),
		})
	}

	details := bkgDetails{
		PaymentCountryCode:   payload.Shipper.CountryCode,
		Date:                 time.Now().Format("2006-01-02"),
		ReadyTime:            time.Now().Format("PT15H04M"),
		DimensionUnit:        string(units.IN),
		WeightUnit:           string(units.LB),
		NumberOfPieces:       packages.Len(),
		ShipmentWeight:       packages.Weight().LB(),
		Pieces:               pieces{Piece: pieceList},
		PaymentAccountNumber: m.settings.AccountNumber,
		IsDutiable:           yesNo(isDutiable),
		NetworkTypeCode:      networkTypeBoth,
		QtdShp:               requestedShipments,
	}
	if insurance := options.Insurance(); insurance != nil {
		details.InsuredValue = &insurance.Amount
		details.InsuredCurrency = options.Currency()
	}

	request := dctRequest{
		NSP:         "http://www.dhl.com",
		NSDatatypes: "http://www.dhl.com/datatypes",
		NSRequest:   "http://www.dhl.com/DCTRequestdatatypes",
		GetQuote: getQuote{
			Request: m.settings.requestHeader("3PV"),
			From: dctAddress{
				CountryCode: payload.Shipper.CountryCode,
				Postalcode:  payload.Shipper.PostalCode,
				City:        payload.Shipper.City,
				Suburb:      payload.Shipper.StateCode,
			},
			To: dctAddress{
				CountryCode: payload.Recipient.CountryCode,
				Postalcode:  payload.Recipient.PostalCode,
				City:        payload.Recipient.City,
				Suburb:      payload.Recipient.StateCode,
			},
			BkgDetails: details,
		},
	}
	if isInternational && isDutiable {
		request.GetQuote.Dutiable = &dctDutiable{
			DeclaredCurrency: options.Currency(),
			DeclaredValue:    1.0,
		}
	}

	return shipping.NewSerializable(request, serializeRateRequest), nil
}

func serializeRateRequest(request dctRequest) string {
	out, err := xml.MarshalIndent(request, "", "    ")
	if err != nil {
		return ""
	}
	return xml.Header + string(out)
}

func defaultProduct(isInternational, isDocument bool) string {
	switch {
	case isInternational && isDocument:
		return serviceCodes["dhl_express_worldwide_doc"]
	case isInternational:
		return serviceCodes["dhl_express_worldwide_nondoc"]
	case isDocument:
		return serviceCodes["dhl_express_easy_doc"]
	default:
		return serviceCodes["dhl_express_easy_nondoc"]
	}
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}

// ============================================================================
// Rate response parsing
// ============================================================================

type quotedShipment struct {
	GlobalProductCode string        `xml:"GlobalProductCode"`
	LocalProductName  string        `xml:"LocalProductName"`
	WeightCharge      float64       `xml:"WeightCharge"`
	ShippingCharge    float64       `xml:"ShippingCharge"`
	CurrencyCode      string        `xml:"CurrencyCode"`
	PricingDate       string        `xml:"PricingDate"`
	DeliveryDate      []dhlDelivery `xml:"DeliveryDate"`
	ExtraCharges      []extraCharge `xml:"QtdShpExChrg"`
}

type dhlDelivery struct {
	DlvyDateTime string `xml:"DlvyDateTime"`
}

type extraCharge struct {
	LocalServiceTypeName string  `xml:"LocalServiceTypeName"`
	ChargeValue          float64 `xml:"ChargeValue"`
}

var rateClassifier = shipping.ChargeClassifier{
	Discount:    []string{"Discount"},
	DutiesTaxes: []string{"TAXES PAID"},
}

// ParseRateResponse extracts every quoted shipment from a DCT response.
// Zero-charge quotes are placeholders the gateway emits for products it
// will not actually sell on the lane; they are dropped.
func (m *Mapper) ParseRateResponse(response *shipping.Deserializable) ([]shipping.RateDetails, []shipping.Message) {
	var rates []shipping.RateDetails
	for _, node := range response.Root.FindAll("QtdShp") {
		if rate := m.extractQuote(node); rate != nil {
			rates = append(rates, *rate)
		}
	}
	return rates, parseErrorResponse(response.Root, m.Identity())
}

func (m *Mapper) extractQuote(node *xmltree.Element) *shipping.RateDetails {
	var quote quotedShipment
	if err := xmltree.DecodeInto(node, &quote); err != nil {
		return nil
	}
	if quote.ShippingCharge == 0 {
		return nil
	}

	charges := make([]shipping.ChargeDetails, 0, len(quote.ExtraCharges))
	for _, extra := range quote.ExtraCharges {
		charges = append(charges, shipping.ChargeDetails{
			Name:     extra.LocalServiceTypeName,
			Amount:   extra.ChargeValue,
			Currency: quote.CurrencyCode,
		})
	}
	discount, dutiesTaxes, _ := rateClassifier.Classify(charges)

	id := m.Identity()
	return &shipping.RateDetails{
		CarrierName:    id.CarrierName,
		CarrierID:      id.CarrierID,
		Service:        serviceNameOf(quote.LocalProductName),
		Currency:       quote.CurrencyCode,
		BaseCharge:     quote.WeightCharge,
		TotalCharge:    quote.ShippingCharge,
		Discount:       discount,
		DutiesAndTaxes: dutiesTaxes,
		TransitDays:    transitDays(quote),
		ExtraCharges:   charges,
	}
}

func transitDays(quote quotedShipment) *int {
	if len(quote.DeliveryDate) == 0 || quote.PricingDate == "" {
		return nil
	}
	delivery, err := time.Parse("2006-01-02 15:04:05", quote.DeliveryDate[0].DlvyDateTime)
	if err != nil {
		return nil
	}
	pricing, err := time.Parse("2006-01-02", quote.PricingDate)
	if err != nil {
		return nil
	}
	days := int(delivery.Sub(pricing).Hours() / 24)
	return &days
}
