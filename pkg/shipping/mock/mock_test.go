package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivro/shipcore/pkg/shipping"
)

var testSettings = Settings{CarrierID: "mock-local"}

func rateTestPayload() *shipping.RateRequest {
	weight := 2.0
	return &shipping.RateRequest{
		Shipper:   shipping.Address{PostalCode: "H2B1A0", CountryCode: "CA"},
		Recipient: shipping.Address{PostalCode: "K1K4T3", CountryCode: "CA"},
		Parcels:   []shipping.Parcel{{Weight: &weight}},
	}
}

func TestRateRoundTrip(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)

	request, err := mapper.CreateRateRequest(rateTestPayload())
	require.NoError(t, err)
	assert.Contains(t, request.Serialize(), "<weight>2</weight>")

	response, err := proxy.FetchRates(context.Background(), request)
	require.NoError(t, err)

	rates, messages := mapper.ParseRateResponse(response)
	assert.Empty(t, messages)
	require.Len(t, rates, 2)

	standard := rates[0]
	assert.Equal(t, "mock", standard.CarrierName)
	assert.Equal(t, "mock-local", standard.CarrierID)
	assert.Equal(t, "mock_standard", standard.Service)
	assert.Equal(t, 15.82, standard.TotalCharge)
	assert.Equal(t, 1.82, standard.DutiesAndTaxes)
	require.NotNil(t, standard.TransitDays)
	assert.Equal(t, 5, *standard.TransitDays)
	require.Len(t, standard.ExtraCharges, 1)
	assert.Equal(t, 1.5, standard.ExtraCharges[0].Amount)

	express := rates[1]
	assert.Equal(t, "mock_express", express.Service)
	assert.Equal(t, 29.95, express.TotalCharge)
	assert.Equal(t, 2, *express.TransitDays)
}

func TestRateRequestValidation(t *testing.T) {
	mapper := NewMapper(testSettings)
	payload := rateTestPayload()
	payload.Parcels = []shipping.Parcel{{}}

	_, err := mapper.CreateRateRequest(payload)
	require.Error(t, err)

	fieldErr, ok := err.(*shipping.FieldError)
	require.True(t, ok)
	assert.Equal(t, shipping.FieldErrorRequired, fieldErr.Violations["parcel[0].weight"])
}

func TestTrackingRoundTrip(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)

	request, err := mapper.CreateTrackingRequest(&shipping.TrackingRequest{
		TrackingNumbers: []string{"MCK0001", "MCK0002"},
	})
	require.NoError(t, err)

	response, err := proxy.FetchTracking(context.Background(), request)
	require.NoError(t, err)

	details, messages := mapper.ParseTrackingResponse(response)
	assert.Empty(t, messages)
	require.Len(t, details, 2)
	assert.Equal(t, "MCK0001", details[0].TrackingNumber)
	assert.Equal(t, "MCK0002", details[1].TrackingNumber)
	require.Len(t, details[0].Events, 2)
	assert.Equal(t, "PU", details[0].Events[0].Code)
	assert.Equal(t, "Delivered", details[0].Events[1].Description)
	assert.Equal(t, "OTTAWA, ON", details[0].Events[1].Location)
}

func TestTrackingRequiresNumbers(t *testing.T) {
	mapper := NewMapper(testSettings)

	_, err := mapper.CreateTrackingRequest(&shipping.TrackingRequest{})
	require.Error(t, err)
}

func TestShipmentRoundTrip(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)
	weight := 2.0

	request, err := mapper.CreateShipmentRequest(&shipping.ShipmentRequest{
		Shipper:   shipping.Address{PostalCode: "H2B1A0"},
		Recipient: shipping.Address{PostalCode: "K1K4T3"},
		Parcels:   []shipping.Parcel{{Weight: &weight}},
		Service:   "mock_standard",
	})
	require.NoError(t, err)
	assert.Contains(t, request.Serialize(), "<service>mock_standard</service>")

	response, err := proxy.CreateShipment(context.Background(), request)
	require.NoError(t, err)

	details, messages := mapper.ParseShipmentResponse(response)
	assert.Empty(t, messages)
	require.NotNil(t, details)
	assert.NotEmpty(t, details.ShipmentID)
	assert.NotEmpty(t, details.TrackingNumber)
	assert.NotEmpty(t, details.Label)
}

func TestPickupRoundTrip(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)

	request, err := mapper.CreatePickupRequest(&shipping.PickupRequest{
		Address:     shipping.Address{PostalCode: "H2B1A0"},
		PickupDate:  "2024-03-11",
		ReadyTime:   "09:00",
		ClosingTime: "17:00",
	})
	require.NoError(t, err)

	response, err := proxy.SchedulePickup(context.Background(), request)
	require.NoError(t, err)

	details, messages := mapper.ParsePickupResponse(response)
	assert.Empty(t, messages)
	require.NotNil(t, details)
	assert.NotEmpty(t, details.ConfirmationNumber)
	assert.Equal(t, "2024-03-11", details.PickupDate)
	assert.Equal(t, "09:00", details.ReadyTime)
	assert.Equal(t, "17:00", details.ClosingTime)
}

func TestPickupUpdateKeepsConfirmation(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)

	request, err := mapper.CreatePickupUpdateRequest(&shipping.PickupUpdateRequest{
		ConfirmationNumber: "PUAB12CD",
		Address:            shipping.Address{PostalCode: "H2B1A0"},
		PickupDate:         "2024-03-12",
		ReadyTime:          "10:00",
		ClosingTime:        "16:00",
	})
	require.NoError(t, err)

	response, err := proxy.UpdatePickup(context.Background(), request)
	require.NoError(t, err)

	details, messages := mapper.ParsePickupUpdateResponse(response)
	assert.Empty(t, messages)
	require.NotNil(t, details)
	assert.Equal(t, "PUAB12CD", details.ConfirmationNumber)
	assert.Equal(t, "2024-03-12", details.PickupDate)
}

func TestPickupUpdateRequiresConfirmation(t *testing.T) {
	mapper := NewMapper(testSettings)

	_, err := mapper.CreatePickupUpdateRequest(&shipping.PickupUpdateRequest{})
	require.Error(t, err)
}

func TestPickupCancelRoundTrip(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)

	request, err := mapper.CreatePickupCancelRequest(&shipping.PickupCancelRequest{
		ConfirmationNumber: "PUAB12CD",
	})
	require.NoError(t, err)

	response, err := proxy.CancelPickup(context.Background(), request)
	require.NoError(t, err)

	details, messages := mapper.ParsePickupCancelResponse(response)
	assert.Empty(t, messages)
	require.NotNil(t, details)
	assert.True(t, details.Success)
	assert.Equal(t, shipping.CapabilityPickupCancel, details.Operation)
}

func TestAddressValidationRoundTrip(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)

	request, err := mapper.CreateAddressValidationRequest(&shipping.AddressValidationRequest{
		Address: shipping.Address{
			AddressLine1: "333 Twin Ave",
			City:         "Ottawa",
			PostalCode:   "k1k 4t3",
			CountryCode:  "CA",
		},
	})
	require.NoError(t, err)

	response, err := proxy.ValidateAddress(context.Background(), request)
	require.NoError(t, err)

	details, messages := mapper.ParseAddressValidationResponse(response)
	assert.Empty(t, messages)
	require.NotNil(t, details)
	assert.True(t, details.Success)
	require.NotNil(t, details.CorrectedAddress)
	assert.Equal(t, "K1K4T3", details.CorrectedAddress.PostalCode)
}

func TestAddressValidationRejectsMissingPostalCode(t *testing.T) {
	mapper := NewMapper(testSettings)
	proxy := NewProxy(testSettings)

	request, err := mapper.CreateAddressValidationRequest(&shipping.AddressValidationRequest{
		Address: shipping.Address{City: "Ottawa"},
	})
	require.NoError(t, err)

	response, err := proxy.ValidateAddress(context.Background(), request)
	require.NoError(t, err)

	details, messages := mapper.ParseAddressValidationResponse(response)
	assert.Empty(t, messages)
	require.NotNil(t, details)
	assert.False(t, details.Success)
	assert.Nil(t, details.CorrectedAddress)
}

func TestSimulatedFailure(t *testing.T) {
	settings := Settings{CarrierID: "mock-broken", FailureCode: "MOCK500"}
	mapper := NewMapper(settings)
	proxy := NewProxy(settings)

	request, err := mapper.CreateRateRequest(rateTestPayload())
	require.NoError(t, err)

	response, err := proxy.FetchRates(context.Background(), request)
	require.NoError(t, err)

	rates, messages := mapper.ParseRateResponse(response)
	assert.Empty(t, rates)
	require.Len(t, messages, 1)
	assert.Equal(t, "MOCK500", messages[0].Code)
	assert.Equal(t, "simulated carrier failure", messages[0].Text)
	assert.Equal(t, "mock-broken", messages[0].CarrierID)
}

func TestCapabilities(t *testing.T) {
	caps := shipping.CapabilitiesOf(NewMapper(testSettings))
	assert.ElementsMatch(t, []shipping.Capability{
		shipping.CapabilityRating,
		shipping.CapabilityTracking,
		shipping.CapabilityShipping,
		shipping.CapabilityPickupCreate,
		shipping.CapabilityPickupUpdate,
		shipping.CapabilityPickupCancel,
		shipping.CapabilityAddressValidation,
	}, caps)
}
