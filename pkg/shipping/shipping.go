// Package shipping normalizes disparate shipping-carrier APIs behind one
// unified request/response model. Carrier adapters translate normalized
// payloads into carrier wire objects and parse carrier response trees back
// into carrier-agnostic details, collecting every carrier-reported message
// instead of failing on the first.
package shipping

import "context"

// Capability identifies one unified operation a carrier may support.
type Capability string

const (
	CapabilityRating            Capability = "rating"
	CapabilityTracking          Capability = "tracking"
	CapabilityShipping          Capability = "shipping"
	CapabilityPickupCreate      Capability = "pickup-create"
	CapabilityPickupUpdate      Capability = "pickup-update"
	CapabilityPickupCancel      Capability = "pickup-cancel"
	CapabilityAddressValidation Capability = "address-validation"
)

// Identity describes a configured carrier account. CarrierName is the
// canonical carrier identifier ("dhl", "ups", ...); CarrierID is the
// caller-assigned name for this particular account configuration.
type Identity struct {
	CarrierName string
	CarrierID   string
}

// Mapper is the base contract every carrier adapter satisfies. Capability
// support is expressed through the optional per-capability interfaces
// below: an adapter implements exactly the pairs it supports, and the
// Create*/Parse* dispatch helpers surface a CapabilityError for the rest.
type Mapper interface {
	Identity() Identity
}

// Proxy is the base transport contract. A proxy performs exactly one
// network operation per capability, consuming a serialized request and
// returning the raw response tree. It owns no parsing or business logic.
type Proxy interface {
	Identity() Identity
}

// ============================================================================
// Per-capability mapper contracts
// ============================================================================

// RateMapper is implemented by adapters that support rate quoting.
type RateMapper interface {
	Mapper
	CreateRateRequest(payload *RateRequest) (Serializable, error)
	ParseRateResponse(response *Deserializable) ([]RateDetails, []Message)
}

// TrackingMapper is implemented by adapters that support tracking.
type TrackingMapper interface {
	Mapper
	CreateTrackingRequest(payload *TrackingRequest) (Serializable, error)
	ParseTrackingResponse(response *Deserializable) ([]TrackingDetails, []Message)
}

// ShipmentMapper is implemented by adapters that support shipment creation.
type ShipmentMapper interface {
	Mapper
	CreateShipmentRequest(payload *ShipmentRequest) (Serializable, error)
	ParseShipmentResponse(response *Deserializable) (*ShipmentDetails, []Message)
}

// PickupMapper is implemented by adapters that support pickup scheduling.
type PickupMapper interface {
	Mapper
	CreatePickupRequest(payload *PickupRequest) (Serializable, error)
	ParsePickupResponse(response *Deserializable) (*PickupDetails, []Message)
}

// PickupUpdateMapper is implemented by adapters that support pickup
// modification.
type PickupUpdateMapper interface {
	Mapper
	CreatePickupUpdateRequest(payload *PickupUpdateRequest) (Serializable, error)
	ParsePickupUpdateResponse(response *Deserializable) (*PickupDetails, []Message)
}

// PickupCancelMapper is implemented by adapters that support pickup
// cancellation.
type PickupCancelMapper interface {
	Mapper
	CreatePickupCancelRequest(payload *PickupCancelRequest) (Serializable, error)
	ParsePickupCancelResponse(response *Deserializable) (*ConfirmationDetails, []Message)
}

// AddressValidationMapper is implemented by adapters that support address
// validation.
type AddressValidationMapper interface {
	Mapper
	CreateAddressValidationRequest(payload *AddressValidationRequest) (Serializable, error)
	ParseAddressValidationResponse(response *Deserializable) (*AddressValidationDetails, []Message)
}

// ============================================================================
// Per-capability proxy contracts
// ============================================================================

// RateProxy executes a rate request against the carrier.
type RateProxy interface {
	Proxy
	FetchRates(ctx context.Context, request Serializable) (*Deserializable, error)
}

// TrackingProxy executes a tracking request against the carrier.
type TrackingProxy interface {
	Proxy
	FetchTracking(ctx context.Context, request Serializable) (*Deserializable, error)
}

// ShipmentProxy executes a shipment creation request against the carrier.
type ShipmentProxy interface {
	Proxy
	CreateShipment(ctx context.Context, request Serializable) (*Deserializable, error)
}

// PickupProxy executes a pickup scheduling request against the carrier.
type PickupProxy interface {
	Proxy
	SchedulePickup(ctx context.Context, request Serializable) (*Deserializable, error)
}

// PickupUpdateProxy executes a pickup modification request.
type PickupUpdateProxy interface {
	Proxy
	UpdatePickup(ctx context.Context, request Serializable) (*Deserializable, error)
}

// PickupCancelProxy executes a pickup cancellation request.
type PickupCancelProxy interface {
	Proxy
	CancelPickup(ctx context.Context, request Serializable) (*Deserializable, error)
}

// AddressValidationProxy executes an address validation request.
type AddressValidationProxy interface {
	Proxy
	ValidateAddress(ctx context.Context, request Serializable) (*Deserializable, error)
}
