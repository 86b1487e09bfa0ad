package shipping

// Dispatch helpers provide a generic invocation path over the capability
// interfaces. A mapper that does not implement the requested capability
// yields a CapabilityError naming the missing method and the adapter; the
// check is a static type assertion, so capability discovery costs nothing
// at runtime.

// CreateRateRequest builds a carrier rate request through m, or reports the
// capability as unsupported.
func CreateRateRequest(m Mapper, payload *RateRequest) (Serializable, error) {
	rm, ok := m.(RateMapper)
	if !ok {
		return nil, NewCapabilityError("CreateRateRequest", m)
	}
	return rm.CreateRateRequest(payload)
}

// ParseRateResponse parses a carrier rate response through m.
func ParseRateResponse(m Mapper, response *Deserializable) ([]RateDetails, []Message, error) {
	rm, ok := m.(RateMapper)
	if !ok {
		return nil, nil, NewCapabilityError("ParseRateResponse", m)
	}
	details, messages := rm.ParseRateResponse(response)
	return details, messages, nil
}

// CreateTrackingRequest builds a carrier tracking request through m.
func CreateTrackingRequest(m Mapper, payload *TrackingRequest) (Serializable, error) {
	tm, ok := m.(TrackingMapper)
	if !ok {
		return nil, NewCapabilityError("CreateTrackingRequest", m)
	}
	return tm.CreateTrackingRequest(payload)
}

// ParseTrackingResponse parses a carrier tracking response through m.
func ParseTrackingResponse(m Mapper, response *Deserializable) ([]TrackingDetails, []Message, error) {
	tm, ok := m.(TrackingMapper)
	if !ok {
		return nil, nil, NewCapabilityError("ParseTrackingResponse", m)
	}
	details, messages := tm.ParseTrackingResponse(response)
	return details, messages, nil
}

// CreateShipmentRequest builds a carrier shipment request through m.
func CreateShipmentRequest(m Mapper, payload *ShipmentRequest) (Serializable, error) {
	sm, ok := m.(ShipmentMapper)
	if !ok {
		return nil, NewCapabilityError("CreateShipmentRequest", m)
	}
	return sm.CreateShipmentRequest(payload)
}

// ParseShipmentResponse parses a carrier shipment response through m.
func ParseShipmentResponse(m Mapper, response *Deserializable) (*ShipmentDetails, []Message, error) {
	sm, ok := m.(ShipmentMapper)
	if !ok {
		return nil, nil, NewCapabilityError("ParseShipmentResponse", m)
	}
	details, messages := sm.ParseShipmentResponse(response)
	return details, messages, nil
}

// CreatePickupRequest builds a carrier pickup request through m.
func CreatePickupRequest(m Mapper, payload *PickupRequest) (Serializable, error) {
	pm, ok := m.(PickupMapper)
	if !ok {
		return nil, NewCapabilityError("CreatePickupRequest", m)
	}
	return pm.CreatePickupRequest(payload)
}

// ParsePickupResponse parses a carrier pickup response through m.
func ParsePickupResponse(m Mapper, response *Deserializable) (*PickupDetails, []Message, error) {
	pm, ok := m.(PickupMapper)
	if !ok {
		return nil, nil, NewCapabilityError("ParsePickupResponse", m)
	}
	details, messages := pm.ParsePickupResponse(response)
	return details, messages, nil
}

// CreatePickupUpdateRequest builds a carrier pickup modification request.
func CreatePickupUpdateRequest(m Mapper, payload *PickupUpdateRequest) (Serializable, error) {
	pm, ok := m.(PickupUpdateMapper)
	if !ok {
		return nil, NewCapabilityError("CreatePickupUpdateRequest", m)
	}
	return pm.CreatePickupUpdateRequest(payload)
}

// ParsePickupUpdateResponse parses a carrier pickup modification response.
func ParsePickupUpdateResponse(m Mapper, response *Deserializable) (*PickupDetails, []Message, error) {
	pm, ok := m.(PickupUpdateMapper)
	if !ok {
		return nil, nil, NewCapabilityError("ParsePickupUpdateResponse", m)
	}
	details, messages := pm.ParsePickupUpdateResponse(response)
	return details, messages, nil
}

// CreatePickupCancelRequest builds a carrier pickup cancellation request.
func CreatePickupCancelRequest(m Mapper, payload *PickupCancelRequest) (Serializable, error) {
	pm, ok := m.(PickupCancelMapper)
	if !ok {
		return nil, NewCapabilityError("CreatePickupCancelRequest", m)
	}
	return pm.CreatePickupCancelRequest(payload)
}

// ParsePickupCancelResponse parses a carrier pickup cancellation response.
func ParsePickupCancelResponse(m Mapper, response *Deserializable) (*ConfirmationDetails, []Message, error) {
	pm, ok := m.(PickupCancelMapper)
	if !ok {
		return nil, nil, NewCapabilityError("ParsePickupCancelResponse", m)
	}
	details, messages := pm.ParsePickupCancelResponse(response)
	return details, messages, nil
}

// CreateAddressValidationRequest builds a carrier address validation request.
func CreateAddressValidationRequest(m Mapper, payload *AddressValidationRequest) (Serializable, error) {
	am, ok := m.(AddressValidationMapper)
	if !ok {
		return nil, NewCapabilityError("CreateAddressValidationRequest", m)
	}
	return am.CreateAddressValidationRequest(payload)
}

// ParseAddressValidationResponse parses a carrier address validation response.
func ParseAddressValidationResponse(m Mapper, response *Deserializable) (*AddressValidationDetails, []Message, error) {
	am, ok := m.(AddressValidationMapper)
	if !ok {
		return nil, nil, NewCapabilityError("ParseAddressValidationResponse", m)
	}
	details, messages := am.ParseAddressValidationResponse(response)
	return details, messages, nil
}

// CapabilitiesOf returns the capability set a mapper supports, derived
// statically from the interfaces it implements.
func CapabilitiesOf(m Mapper) []Capability {
	var caps []Capability
	if _, ok := m.(RateMapper); ok {
		caps = append(caps, CapabilityRating)
	}
	if _, ok := m.(TrackingMapper); ok {
		caps = append(caps, CapabilityTracking)
	}
	if _, ok := m.(ShipmentMapper); ok {
		caps = append(caps, CapabilityShipping)
	}
	if _, ok := m.(PickupMapper); ok {
		caps = append(caps, CapabilityPickupCreate)
	}
	if _, ok := m.(PickupUpdateMapper); ok {
		caps = append(caps, CapabilityPickupUpdate)
	}
	if _, ok := m.(PickupCancelMapper); ok {
		caps = append(caps, CapabilityPickupCancel)
	}
	if _, ok := m.(AddressValidationMapper); ok {
		caps = append(caps, CapabilityAddressValidation)
	}
	return caps
}
