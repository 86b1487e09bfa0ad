package dhl

import (
	"encoding/xml"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/units"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// ============================================================================
// Pickup wire structures
// ============================================================================

type bookPickupRequest struct {
	XMLName       xml.Name      `xml:"req:BookPURequest"`
	NS            string        `xml:"xmlns:req,attr"`
	Request       requestHeader `xml:"Request"`
	SchemaVersion string        `xml:"schemaVersion,attr"`
	RegionCode    string        `xml:"RegionCode"`
	Requestor     requestor     `xml:"Requestor"`
	Place         place         `xml:"Place"`
	PickupContact contact       `xml:"PickupContact"`
	Pickup        pickupSeg     `xml:"Pickup"`
}

type modifyPickupRequest struct {
	XMLName            xml.Name      `xml:"req:ModifyPURequest"`
	NS                 string        `xml:"xmlns:req,attr"`
	Request            requestHeader `xml:"Request"`
	SchemaVersion      string        `xml:"schemaVersion,attr"`
	RegionCode         string        `xml:"RegionCode"`
	ConfirmationNumber string        `xml:"ConfirmationNumber"`
	Requestor          requestor     `xml:"Requestor"`
	Place              place         `xml:"Place"`
	PickupContact      contact       `xml:"PickupContact"`
	Pickup             pickupSeg     `xml:"Pickup"`
}

type requestor struct {
	AccountNumber string  `xml:"AccountNumber"`
	AccountType   string  `xml:"AccountType"`
	Contact       contact `xml:"RequestorContact"`
	CompanyName   string  `xml:"CompanyName,omitempty"`
}

type contact struct {
	PersonName string `xml:"PersonName"`
	Phone      string `xml:"Phone"`
}

type place struct {
	LocationType    string `xml:"LocationType"`
	CompanyName     string `xml:"CompanyName,omitempty"`
	Address1        string `xml:"Address1"`
	Address2        string `xml:"Address2,omitempty"`
	PackageLocation string `xml:"PackageLocation,omitempty"`
	City            string `xml:"City"`
	StateCode       string `xml:"StateCode,omitempty"`
	CountryCode     string `xml:"CountryCode"`
	PostalCode      string `xml:"PostalCode"`
}

type pickupSeg struct {
	PickupDate          string    `xml:"PickupDate"`
	ReadyByTime         string    `xml:"ReadyByTime"`
	CloseTime           string    `xml:"CloseTime"`
	Pieces              int       `xml:"Pieces"`
	RemotePickupFlag    string    `xml:"RemotePickupFlag"`
	Weight              weightSeg `xml:"weight"`
	SpecialInstructions string    `xml:"SpecialInstructions,omitempty"`
}

type weightSeg struct {
	Weight     *float64 `xml:"Weight"`
	WeightUnit string   `xml:"WeightUnit"`
}

// ============================================================================
// Pickup scheduling
// ============================================================================

// CreatePickupRequest builds a pickup booking request.
func (m *Mapper) CreatePickupRequest(payload *shipping.PickupRequest) (shipping.Serializable, error) {
	packages, err := units.NewPackages(payload.Parcels, packagePresets, []string{"weight"})
	if err != nil {
		return nil, err
	}

	request := bookPickupRequest{
		NS:            "http://www.dhl.com",
		SchemaVersion: "3.0",
		Request:       m.settings.requestHeader("XMLPI"),
		RegionCode:    regionOf(payload.Address.CountryCode),
		Requestor:     m.requestor(payload.Address),
		Place:         pickupPlace(payload.Address, payload.PackageLocation),
		PickupContact: contact{PersonName: payload.Address.PersonName, Phone: payload.Address.PhoneNumber},
		Pickup:        pickupSegment(packages, payload.PickupDate, payload.ReadyTime, payload.ClosingTime, payload.Instruction),
	}
	return shipping.NewSerializable(request, func(r bookPickupRequest) string {
		return serializePickup(r)
	}), nil
}

// ParsePickupResponse extracts pickup details from a booking response. A
// response without a confirmation number yields no details; whatever
// conditions the gateway reported still come back as messages.
func (m *Mapper) ParsePickupResponse(response *shipping.Deserializable) (*shipping.PickupDetails, []shipping.Message) {
	return m.extractPickup(response.Root), parseErrorResponse(response.Root, m.Identity())
}

// ============================================================================
// Pickup modification
// ============================================================================

// CreatePickupUpdateRequest builds a pickup modification request. The
// original confirmation number is mandatory; without it the gateway cannot
// address the booking.
func (m *Mapper) CreatePickupUpdateRequest(payload *shipping.PickupUpdateRequest) (shipping.Serializable, error) {
	if payload.ConfirmationNumber == "" {
		return nil, shipping.NewFieldError(map[string]shipping.FieldErrorCode{
			"confirmation_number": shipping.FieldErrorRequired,
		})
	}
	packages, err := units.NewPackages(payload.Parcels, packagePresets, []string{"weight"})
	if err != nil {
		return nil, err
	}

	request := modifyPickupRequest{
		NS:                 "http://www.dhl.com",
		SchemaVersion:      "3.0",
		Request:            m.settings.requestHeader("XMLPI"),
		RegionCode:         regionOf(payload.Address.CountryCode),
		ConfirmationNumber: payload.ConfirmationNumber,
		Requestor:          m.requestor(payload.Address),
		Place:              pickupPlace(payload.Address, payload.PackageLocation),
		PickupContact:      contact{PersonName: payload.Address.PersonName, Phone: payload.Address.PhoneNumber},
		Pickup:             pickupSegment(packages, payload.PickupDate, payload.ReadyTime, payload.ClosingTime, payload.Instruction),
	}
	return shipping.NewSerializable(request, func(r modifyPickupRequest) string {
		return serializePickup(r)
	}), nil
}

// ParsePickupUpdateResponse extracts the rescheduled pickup details.
func (m *Mapper) ParsePickupUpdateResponse(response *shipping.Deserializable) (*shipping.PickupDetails, []shipping.Message) {
	return m.extractPickup(response.Root), parseErrorResponse(response.Root, m.Identity())
}

// ============================================================================
// Shared pickup helpers
// ============================================================================

func (m *Mapper) requestor(address shipping.Address) requestor {
	return requestor{
		AccountNumber: m.settings.AccountNumber,
		AccountType:   "D",
		CompanyName:   address.CompanyName,
		Contact:       contact{PersonName: address.PersonName, Phone: address.PhoneNumber},
	}
}

func pickupPlace(address shipping.Address, packageLocation string) place {
	locationType := "B"
	if address.Residential {
		locationType = "R"
	}
	return place{
		LocationType:    locationType,
		CompanyName:     address.CompanyName,
		Address1:        address.AddressLine1,
		Address2:        address.AddressLine2,
		PackageLocation: packageLocation,
		City:            address.City,
		StateCode:       address.StateCode,
		CountryCode:     address.CountryCode,
		PostalCode:      address.PostalCode,
	}
}

func pickupSegment(packages units.Packages, date, readyTime, closeTime, instruction string) pickupSeg {
	return pickupSeg{
		PickupDate:          date,
		ReadyByTime:         readyTime,
		CloseTime:           closeTime,
		Pieces:              packages.Len(),
		RemotePickupFlag:    "Y",
		Weight:              weightSeg{Weight: packages.Weight().LB(), WeightUnit: string(units.LB)},
		SpecialInstructions: instruction,
	}
}

func serializePickup(request interface{}) string {
	out, err := xml.MarshalIndent(request, "", "    ")
	if err != nil {
		return ""
	}
	return xml.Header + string(out)
}

type pickupResponse struct {
	ConfirmationNumber string   `xml:"ConfirmationNumber"`
	NextPickupDate     string   `xml:"NextPickupDate"`
	ReadyByTime        string   `xml:"ReadyByTime"`
	CallInTime         string   `xml:"CallInTime"`
	PickupCharge       *float64 `xml:"PickupCharge"`
	CurrencyCode       string   `xml:"CurrencyCode"`
}

func (m *Mapper) extractPickup(root *xmltree.Element) *shipping.PickupDetails {
	if root.Find("ConfirmationNumber") == nil {
		return nil
	}
	var parsed pickupResponse
	if err := xmltree.DecodeInto(root, &parsed); err != nil {
		return nil
	}

	id := m.Identity()
	details := &shipping.PickupDetails{
		CarrierName:        id.CarrierName,
		CarrierID:          id.CarrierID,
		ConfirmationNumber: parsed.ConfirmationNumber,
		PickupDate:         parsed.NextPickupDate,
		ReadyTime:          parsed.ReadyByTime,
		ClosingTime:        parsed.CallInTime,
	}
	if parsed.PickupCharge != nil {
		details.PickupCharge = &shipping.ChargeDetails{
			Name:     "Pickup Charge",
			Amount:   *parsed.PickupCharge,
			Currency: parsed.CurrencyCode,
		}
	}
	return details
}
