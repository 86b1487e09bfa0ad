// Package mock provides an in-process carrier supporting every unified
// capability. The proxy fabricates carrier responses instead of calling a
// network, which makes the full mapper/proxy round trip exercisable in
// tests and local environments without carrier credentials.
package mock

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/units"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

const carrierName = "mock"

// Settings configures the mock carrier.
type Settings struct {
	CarrierID string
	// FailureCode, when set, makes every proxy call return an error
	// document carrying this code instead of a result.
	FailureCode string
}

// Identity returns the carrier identity for these settings.
func (s Settings) Identity() shipping.Identity {
	return shipping.Identity{CarrierName: carrierName, CarrierID: s.CarrierID}
}

// ============================================================================
// Mapper
// ============================================================================

// Mapper translates unified payloads to and from the mock wire documents.
type Mapper struct {
	settings Settings
}

// NewMapper creates a mock mapper.
func NewMapper(settings Settings) *Mapper {
	return &Mapper{settings: settings}
}

// Identity returns the carrier identity.
func (m *Mapper) Identity() shipping.Identity {
	return m.settings.Identity()
}

var (
	_ shipping.Mapper                  = (*Mapper)(nil)
	_ shipping.RateMapper              = (*Mapper)(nil)
	_ shipping.TrackingMapper          = (*Mapper)(nil)
	_ shipping.ShipmentMapper          = (*Mapper)(nil)
	_ shipping.PickupMapper            = (*Mapper)(nil)
	_ shipping.PickupUpdateMapper      = (*Mapper)(nil)
	_ shipping.PickupCancelMapper      = (*Mapper)(nil)
	_ shipping.AddressValidationMapper = (*Mapper)(nil)
)

// ============================================================================
// Wire structures
// ============================================================================

type rateRequest struct {
	XMLName     xml.Name `xml:"rate-request"`
	Origin      string   `xml:"origin"`
	Destination string   `xml:"destination"`
	Weight      float64  `xml:"weight"`
	Services    []string `xml:"services>service,omitempty"`
}

type trackRequest struct {
	XMLName xml.Name `xml:"track-request"`
	Numbers []string `xml:"numbers>number"`
}

type shipmentRequest struct {
	XMLName     xml.Name `xml:"shipment-request"`
	Service     string   `xml:"service"`
	Origin      string   `xml:"origin"`
	Destination string   `xml:"destination"`
	Weight      float64  `xml:"weight"`
	LabelType   string   `xml:"label-type,omitempty"`
}

type pickupRequest struct {
	XMLName      xml.Name `xml:"pickup-request"`
	Confirmation string   `xml:"confirmation,omitempty"`
	Date         string   `xml:"date"`
	ReadyTime    string   `xml:"ready-time"`
	ClosingTime  string   `xml:"closing-time"`
	PostalCode   string   `xml:"postal-code"`
}

type pickupCancelRequest struct {
	XMLName      xml.Name `xml:"pickup-cancel-request"`
	Confirmation string   `xml:"confirmation"`
}

type addressRequest struct {
	XMLName     xml.Name `xml:"address-request"`
	AddressLine string   `xml:"address-line"`
	City        string   `xml:"city"`
	PostalCode  string   `xml:"postal-code"`
	CountryCode string   `xml:"country-code"`
}

func serializeXML[T any](value T) string {
	out, err := xml.MarshalIndent(value, "", "  ")
	if err != nil {
		return ""
	}
	return xml.Header + string(out)
}

// ============================================================================
// Rating
// ============================================================================

// CreateRateRequest validates the parcels and builds a rate document.
func (m *Mapper) CreateRateRequest(payload *shipping.RateRequest) (shipping.Serializable, error) {
	packages, err := units.NewPackages(payload.Parcels, nil, []string{"weight"})
	if err != nil {
		return nil, err
	}

	request := rateRequest{
		Origin:      payload.Shipper.PostalCode,
		Destination: payload.Recipient.PostalCode,
		Services:    payload.Services,
	}
	if weight := packages.Weight().LB(); weight != nil {
		request.Weight = *weight
	}
	return shipping.NewSerializable(request, serializeXML[rateRequest]), nil
}

// ParseRateResponse extracts every quoted rate.
func (m *Mapper) ParseRateResponse(response *shipping.Deserializable) ([]shipping.RateDetails, []shipping.Message) {
	id := m.Identity()
	var rates []shipping.RateDetails
	for _, node := range response.Root.FindAll("rate") {
		var quote struct {
			Service     string  `xml:"service"`
			Currency    string  `xml:"currency"`
			Base        float64 `xml:"base"`
			Fuel        float64 `xml:"fuel"`
			Taxes       float64 `xml:"taxes"`
			Total       float64 `xml:"total"`
			TransitDays int     `xml:"transit-days"`
		}
		if err := xmltree.DecodeInto(node, &quote); err != nil {
			continue
		}
		transit := quote.TransitDays
		rates = append(rates, shipping.RateDetails{
			CarrierName:    id.CarrierName,
			CarrierID:      id.CarrierID,
			Service:        quote.Service,
			Currency:       quote.Currency,
			BaseCharge:     quote.Base,
			TotalCharge:    quote.Total,
			DutiesAndTaxes: quote.Taxes,
			TransitDays:    &transit,
			ExtraCharges: []shipping.ChargeDetails{
				{Name: "Fuel Surcharge", Amount: quote.Fuel, Currency: quote.Currency},
			},
		})
	}
	return rates, parseErrorResponse(response.Root, id)
}

// ============================================================================
// Tracking
// ============================================================================

// CreateTrackingRequest builds a tracking document.
func (m *Mapper) CreateTrackingRequest(payload *shipping.TrackingRequest) (shipping.Serializable, error) {
	if len(payload.TrackingNumbers) == 0 {
		return nil, shipping.NewFieldError(map[string]shipping.FieldErrorCode{
			"tracking_numbers": shipping.FieldErrorRequired,
		})
	}
	return shipping.NewSerializable(trackRequest{Numbers: payload.TrackingNumbers}, serializeXML[trackRequest]), nil
}

// ParseTrackingResponse extracts one tracking result per parcel.
func (m *Mapper) ParseTrackingResponse(response *shipping.Deserializable) ([]shipping.TrackingDetails, []shipping.Message) {
	id := m.Identity()
	var details []shipping.TrackingDetails
	for _, node := range response.Root.FindAll("track-info") {
		detail := shipping.TrackingDetails{
			CarrierName:    id.CarrierName,
			CarrierID:      id.CarrierID,
			TrackingNumber: node.Attr("number"),
		}
		for _, event := range node.FindAll("event") {
			detail.Events = append(detail.Events, shipping.TrackingEvent{
				Date:        event.TextOf("date"),
				Time:        event.TextOf("time"),
				Code:        event.TextOf("code"),
				Description: event.TextOf("description"),
				Location:    event.TextOf("location"),
			})
		}
		details = append(details, detail)
	}
	return details, parseErrorResponse(response.Root, id)
}

// ============================================================================
// Shipping
// ============================================================================

// CreateShipmentRequest validates the parcels and builds a shipment document.
func (m *Mapper) CreateShipmentRequest(payload *shipping.ShipmentRequest) (shipping.Serializable, error) {
	packages, err := units.NewPackages(payload.Parcels, nil, []string{"weight"})
	if err != nil {
		return nil, err
	}

	request := shipmentRequest{
		Service:     payload.Service,
		Origin:      payload.Shipper.PostalCode,
		Destination: payload.Recipient.PostalCode,
		LabelType:   payload.LabelType,
	}
	if weight := packages.Weight().LB(); weight != nil {
		request.Weight = *weight
	}
	return shipping.NewSerializable(request, serializeXML[shipmentRequest]), nil
}

// ParseShipmentResponse extracts the created shipment.
func (m *Mapper) ParseShipmentResponse(response *shipping.Deserializable) (*shipping.ShipmentDetails, []shipping.Message) {
	id := m.Identity()
	messages := parseErrorResponse(response.Root, id)

	node := response.Root.Find("shipment")
	if node == nil {
		return nil, messages
	}
	return &shipping.ShipmentDetails{
		CarrierName:    id.CarrierName,
		CarrierID:      id.CarrierID,
		ShipmentID:     node.TextOf("id"),
		TrackingNumber: node.TextOf("tracking-number"),
		Label:          node.TextOf("label"),
	}, messages
}

// ============================================================================
// Pickups
// ============================================================================

// CreatePickupRequest builds a pickup scheduling document.
func (m *Mapper) CreatePickupRequest(payload *shipping.PickupRequest) (shipping.Serializable, error) {
	request := pickupRequest{
		Date:        payload.PickupDate,
		ReadyTime:   payload.ReadyTime,
		ClosingTime: payload.ClosingTime,
		PostalCode:  payload.Address.PostalCode,
	}
	return shipping.NewSerializable(request, serializeXML[pickupRequest]), nil
}

// ParsePickupResponse extracts the scheduled pickup.
func (m *Mapper) ParsePickupResponse(response *shipping.Deserializable) (*shipping.PickupDetails, []shipping.Message) {
	return m.extractPickup(response)
}

// CreatePickupUpdateRequest builds a pickup modification document.
func (m *Mapper) CreatePickupUpdateRequest(payload *shipping.PickupUpdateRequest) (shipping.Serializable, error) {
	if payload.ConfirmationNumber == "" {
		return nil, shipping.NewFieldError(map[string]shipping.FieldErrorCode{
			"confirmation_number": shipping.FieldErrorRequired,
		})
	}
	request := pickupRequest{
		Confirmation: payload.ConfirmationNumber,
		Date:         payload.PickupDate,
		ReadyTime:    payload.ReadyTime,
		ClosingTime:  payload.ClosingTime,
		PostalCode:   payload.Address.PostalCode,
	}
	return shipping.NewSerializable(request, serializeXML[pickupRequest]), nil
}

// ParsePickupUpdateResponse extracts the modified pickup.
func (m *Mapper) ParsePickupUpdateResponse(response *shipping.Deserializable) (*shipping.PickupDetails, []shipping.Message) {
	return m.extractPickup(response)
}

func (m *Mapper) extractPickup(response *shipping.Deserializable) (*shipping.PickupDetails, []shipping.Message) {
	id := m.Identity()
	messages := parseErrorResponse(response.Root, id)

	node := response.Root.Find("pickup")
	if node == nil {
		return nil, messages
	}
	return &shipping.PickupDetails{
		CarrierName:        id.CarrierName,
		CarrierID:          id.CarrierID,
		ConfirmationNumber: node.TextOf("confirmation"),
		PickupDate:         node.TextOf("date"),
		ReadyTime:          node.TextOf("ready-time"),
		ClosingTime:        node.TextOf("closing-time"),
	}, messages
}

// CreatePickupCancelRequest builds a pickup cancellation document.
func (m *Mapper) CreatePickupCancelRequest(payload *shipping.PickupCancelRequest) (shipping.Serializable, error) {
	if payload.ConfirmationNumber == "" {
		return nil, shipping.NewFieldError(map[string]shipping.FieldErrorCode{
			"confirmation_number": shipping.FieldErrorRequired,
		})
	}
	request := pickupCancelRequest{Confirmation: payload.ConfirmationNumber}
	return shipping.NewSerializable(request, serializeXML[pickupCancelRequest]), nil
}

// ParsePickupCancelResponse reports whether the cancellation succeeded.
func (m *Mapper) ParsePickupCancelResponse(response *shipping.Deserializable) (*shipping.ConfirmationDetails, []shipping.Message) {
	id := m.Identity()
	messages := parseErrorResponse(response.Root, id)
	if len(messages) > 0 {
		return nil, messages
	}
	return &shipping.ConfirmationDetails{
		CarrierName: id.CarrierName,
		CarrierID:   id.CarrierID,
		Operation:   shipping.CapabilityPickupCancel,
		Success:     true,
	}, nil
}

// ============================================================================
// Address validation
// ============================================================================

// CreateAddressValidationRequest builds an address validation document.
func (m *Mapper) CreateAddressValidationRequest(payload *shipping.AddressValidationRequest) (shipping.Serializable, error) {
	request := addressRequest{
		AddressLine: payload.Address.AddressLine1,
		City:        payload.Address.City,
		PostalCode:  payload.Address.PostalCode,
		CountryCode: payload.Address.CountryCode,
	}
	return shipping.NewSerializable(request, serializeXML[addressRequest]), nil
}

// ParseAddressValidationResponse extracts the validation verdict.
func (m *Mapper) ParseAddressValidationResponse(response *shipping.Deserializable) (*shipping.AddressValidationDetails, []shipping.Message) {
	id := m.Identity()
	messages := parseErrorResponse(response.Root, id)

	node := response.Root.Find("address")
	if node == nil {
		return nil, messages
	}
	details := &shipping.AddressValidationDetails{
		CarrierName: id.CarrierName,
		CarrierID:   id.CarrierID,
		Success:     node.Attr("valid") == "true",
	}
	if details.Success {
		details.CorrectedAddress = &shipping.Address{
			AddressLine1: node.TextOf("address-line"),
			City:         node.TextOf("city"),
			PostalCode:   node.TextOf("postal-code"),
			CountryCode:  node.TextOf("country-code"),
		}
	}
	return details, messages
}

func parseErrorResponse(root *xmltree.Element, identity shipping.Identity) []shipping.Message {
	var messages []shipping.Message
	for _, node := range root.FindAll("error") {
		messages = append(messages, shipping.Message{
			CarrierName: identity.CarrierName,
			CarrierID:   identity.CarrierID,
			Code:        node.Attr("code"),
			Text:        strings.TrimSpace(node.Text),
		})
	}
	return messages
}

// ============================================================================
// Proxy
// ============================================================================

// Proxy fabricates carrier responses locally. Every call parses the
// serialized request and answers with a deterministic document derived
// from it, so assertions can predict the full round trip.
type Proxy struct {
	settings Settings
}

// NewProxy creates a mock proxy.
func NewProxy(settings Settings) *Proxy {
	return &Proxy{settings: settings}
}

// Identity returns the carrier identity.
func (p *Proxy) Identity() shipping.Identity {
	return p.settings.Identity()
}

var (
	_ shipping.Proxy                  = (*Proxy)(nil)
	_ shipping.RateProxy              = (*Proxy)(nil)
	_ shipping.TrackingProxy          = (*Proxy)(nil)
	_ shipping.ShipmentProxy          = (*Proxy)(nil)
	_ shipping.PickupProxy            = (*Proxy)(nil)
	_ shipping.PickupUpdateProxy      = (*Proxy)(nil)
	_ shipping.PickupCancelProxy      = (*Proxy)(nil)
	_ shipping.AddressValidationProxy = (*Proxy)(nil)
)

func (p *Proxy) respond(op shipping.Capability, document string) (*shipping.Deserializable, error) {
	if p.settings.FailureCode != "" {
		document = fmt.Sprintf(`<response><error code=%q>simulated carrier failure</error></response>`,
			p.settings.FailureCode)
	}
	root, err := xmltree.Parse([]byte(document))
	if err != nil {
		return nil, fmt.Errorf("failed to build response: %w", err)
	}
	return shipping.NewDeserializable(p.Identity(), op, root), nil
}

// FetchRates answers with a standard and an express quote.
func (p *Proxy) FetchRates(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	return p.respond(shipping.CapabilityRating, `<rates>
  <rate>
    <service>mock_standard</service>
    <currency>CAD</currency>
    <base>12.50</base>
    <fuel>1.50</fuel>
    <taxes>1.82</taxes>
    <total>15.82</total>
    <transit-days>5</transit-days>
  </rate>
  <rate>
    <service>mock_express</service>
    <currency>CAD</currency>
    <base>24.00</base>
    <fuel>2.50</fuel>
    <taxes>3.45</taxes>
    <total>29.95</total>
    <transit-days>2</transit-days>
  </rate>
</rates>`)
}

// FetchTracking answers with a delivered history per requested number.
func (p *Proxy) FetchTracking(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	root, err := xmltree.Parse([]byte(request.Serialize()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	var infos strings.Builder
	for _, number := range root.FindAll("number") {
		fmt.Fprintf(&infos, `<track-info number=%q>
  <event><date>2024-03-04</date><time>08:10</time><code>PU</code><description>Picked up</description><location>MONTREAL, QC</location></event>
  <event><date>2024-03-06</date><time>14:25</time><code>DL</code><description>Delivered</description><location>OTTAWA, ON</location></event>
</track-info>`, strings.TrimSpace(number.Text))
	}
	return p.respond(shipping.CapabilityTracking, "<track-response>"+infos.String()+"</track-response>")
}

// CreateShipment answers with a fabricated shipment and label.
func (p *Proxy) CreateShipment(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	id := uuid.NewString()
	return p.respond(shipping.CapabilityShipping, fmt.Sprintf(`<shipment>
  <id>shp_%s</id>
  <tracking-number>MCK%s</tracking-number>
  <label>JVBERi0xLjQ=</label>
</shipment>`, id, strings.ToUpper(id[:8])))
}

// SchedulePickup answers with a fabricated confirmation echoing the slot.
func (p *Proxy) SchedulePickup(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	return p.echoPickup(shipping.CapabilityPickupCreate, request, "PU"+strings.ToUpper(uuid.NewString()[:8]))
}

// UpdatePickup answers with the existing confirmation and the new slot.
func (p *Proxy) UpdatePickup(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	root, err := xmltree.Parse([]byte(request.Serialize()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return p.echoPickup(shipping.CapabilityPickupUpdate, request, root.TextOf("confirmation"))
}

func (p *Proxy) echoPickup(op shipping.Capability, request shipping.Serializable, confirmation string) (*shipping.Deserializable, error) {
	root, err := xmltree.Parse([]byte(request.Serialize()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return p.respond(op, fmt.Sprintf(`<pickup>
  <confirmation>%s</confirmation>
  <date>%s</date>
  <ready-time>%s</ready-time>
  <closing-time>%s</closing-time>
</pickup>`, confirmation, root.TextOf("date"), root.TextOf("ready-time"), root.TextOf("closing-time")))
}

// CancelPickup acknowledges the cancellation.
func (p *Proxy) CancelPickup(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	return p.respond(shipping.CapabilityPickupCancel, "<ok/>")
}

// ValidateAddress accepts any address carrying a postal code and echoes it
// back normalized.
func (p *Proxy) ValidateAddress(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	root, err := xmltree.Parse([]byte(request.Serialize()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	postal := strings.ReplaceAll(strings.ToUpper(root.TextOf("postal-code")), " ", "")
	if postal == "" {
		return p.respond(shipping.CapabilityAddressValidation, `<address valid="false"/>`)
	}
	return p.respond(shipping.CapabilityAddressValidation, fmt.Sprintf(`<address valid="true">
  <address-line>%s</address-line>
  <city>%s</city>
  <postal-code>%s</postal-code>
  <country-code>%s</country-code>
</address>`, root.TextOf("address-line"), root.TextOf("city"), postal, root.TextOf("country-code")))
}
