package canadapost

import "github.com/delivro/shipcore/pkg/shipping"

// CreatePickupCancelRequest builds a pickup cancellation. The wire payload
// is the bare confirmation number: the REST gateway addresses the pickup
// resource by it and needs no document body.
func (m *Mapper) CreatePickupCancelRequest(payload *shipping.PickupCancelRequest) (shipping.Serializable, error) {
	if payload.ConfirmationNumber == "" {
		return nil, shipping.NewFieldError(map[string]shipping.FieldErrorCode{
			"confirmation_number": shipping.FieldErrorRequired,
		})
	}
	return shipping.NewSerializable(payload.ConfirmationNumber, nil), nil
}

// ParsePickupCancelResponse reports success exactly when the gateway
// reported no error messages.
func (m *Mapper) ParsePickupCancelResponse(response *shipping.Deserializable) (*shipping.ConfirmationDetails, []shipping.Message) {
	messages := parseErrorResponse(response.Root, m.Identity())
	if len(messages) > 0 {
		return nil, messages
	}

	id := m.Identity()
	return &shipping.ConfirmationDetails{
		CarrierName: id.CarrierName,
		CarrierID:   id.CarrierID,
		Operation:   shipping.CapabilityPickupCancel,
		Success:     true,
	}, nil
}
