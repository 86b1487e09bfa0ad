package shipping

// Address represents a normalized postal address used across all carriers.
type Address struct {
	PersonName   string
	CompanyName  string
	AddressLine1 string
	AddressLine2 string
	City         string
	StateCode    string
	PostalCode   string
	CountryCode  string // ISO 3166-1 alpha-2, e.g. "CA", "US"
	PhoneNumber  string
	Email        string
	Residential  bool
}

// Parcel carries the raw physical attributes of a single package as supplied
// by the caller. Dimensions and weight are optional; a nil value means the
// caller did not provide one and a preset (if named) may fill it in.
type Parcel struct {
	ID            string
	Width         *float64
	Height        *float64
	Length        *float64
	Weight        *float64
	WeightUnit    string // "KG" or "LB"; empty means unspecified
	DimensionUnit string // "CM" or "IN"; empty means unspecified
	PackagePreset string // named carrier preset to merge with
	PackagingType string
	IsDocument    bool
	Description   string
	Reference     string
}

// CODOption is a structured cash-on-delivery option value.
type CODOption struct {
	Amount   float64
	Currency string
}

// InsuranceOption is a structured insurance option value.
type InsuranceOption struct {
	Amount   float64
	Currency string
}

// NotificationOption is a structured delivery-notification option value.
type NotificationOption struct {
	Email  string
	Locale string
}

// Payment describes who pays for a shipment.
type Payment struct {
	PaidBy        string // "SENDER", "RECIPIENT" or "THIRD_PARTY"
	AccountNumber string
	Currency      string
}

// Customs carries the customs declaration for cross-border shipments.
type Customs struct {
	ContentType   string
	Incoterm      string
	InvoiceNumber string
	DeclaredValue *float64
	Currency      string
	Certify       bool
	Signer        string
}

// ============================================================================
// Normalized request payloads
// ============================================================================

// RateRequest is the unified rate (quote) request payload.
type RateRequest struct {
	Shipper   Address
	Recipient Address
	Parcels   []Parcel
	// Services lists the caller's preferred services by unified name. Carriers
	// intersect it against their own code tables and fall back to a
	// shape-derived default when nothing matches.
	Services  []string
	Options   map[string]interface{}
	Reference string
}

// TrackingRequest is the unified tracking request payload.
type TrackingRequest struct {
	TrackingNumbers []string
	LanguageCode    string
}

// ShipmentRequest is the unified shipment creation request payload.
type ShipmentRequest struct {
	Shipper   Address
	Recipient Address
	Parcels   []Parcel
	Service   string
	Options   map[string]interface{}
	Payment   *Payment
	Customs   *Customs
	Reference string
	LabelType string
}

// PickupRequest is the unified pickup scheduling request payload.
type PickupRequest struct {
	Address         Address
	Parcels         []Parcel
	PickupDate      string // YYYY-MM-DD
	ReadyTime       string // HH:MM
	ClosingTime     string // HH:MM
	Instruction     string
	PackageLocation string
	Options         map[string]interface{}
}

// PickupUpdateRequest is the unified pickup modification request payload.
type PickupUpdateRequest struct {
	ConfirmationNumber string
	Address            Address
	Parcels            []Parcel
	PickupDate         string
	ReadyTime          string
	ClosingTime        string
	Instruction        string
	PackageLocation    string
	Options            map[string]interface{}
}

// PickupCancelRequest is the unified pickup cancellation request payload.
type PickupCancelRequest struct {
	ConfirmationNumber string
	PickupDate         string
	Reason             string
}

// AddressValidationRequest is the unified address validation request payload.
type AddressValidationRequest struct {
	Address Address
}

// ============================================================================
// Normalized result types
// ============================================================================

// ChargeDetails is a single named charge line reported by a carrier.
type ChargeDetails struct {
	Name     string
	Amount   float64
	Currency string
}

// RateDetails is a carrier-agnostic rate quote.
type RateDetails struct {
	CarrierName    string
	CarrierID      string
	Service        string
	Currency       string
	BaseCharge     float64
	TotalCharge    float64
	DutiesAndTaxes float64
	Discount       float64
	TransitDays    *int
	ExtraCharges   []ChargeDetails
}

// TrackingEvent is a single normalized tracking scan.
type TrackingEvent struct {
	Date        string
	Time        string
	Code        string
	Description string
	Location    string
}

// TrackingDetails is a carrier-agnostic tracking result for one parcel.
type TrackingDetails struct {
	CarrierName    string
	CarrierID      string
	TrackingNumber string
	Events         []TrackingEvent
}

// ShipmentDetails is a carrier-agnostic shipment creation result.
type ShipmentDetails struct {
	CarrierName    string
	CarrierID      string
	ShipmentID     string
	TrackingNumber string
	Label          string // base64 label data when the carrier returns one inline
	SelectedRate   *RateDetails
}

// PickupDetails is a carrier-agnostic pickup scheduling result.
type PickupDetails struct {
	CarrierName        string
	CarrierID          string
	ConfirmationNumber string
	PickupDate         string
	ReadyTime          string
	ClosingTime        string
	PickupCharge       *ChargeDetails
}

// ConfirmationDetails acknowledges an operation that returns no richer data,
// such as a pickup cancellation.
type ConfirmationDetails struct {
	CarrierName string
	CarrierID   string
	Operation   Capability
	Success     bool
}

// AddressValidationDetails is a carrier-agnostic address validation result.
type AddressValidationDetails struct {
	CarrierName      string
	CarrierID        string
	Success          bool
	CorrectedAddress *Address
}

// Message is a unified carrier-reported error or warning. Messages are data,
// not failures: a response may legitimately carry both a usable result and
// advisory messages, so parsers always return them side by side.
type Message struct {
	CarrierName string
	CarrierID   string
	Code        string
	Text        string
}
