package canadapost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

var testSettings = Settings{
	APIKey:         "key",
	APISecret:      "secret",
	CustomerNumber: "2004381",
	CarrierID:      "canadapost-prod",
}

func testPayload() *shipping.RateRequest {
	weight := 1.0
	return &shipping.RateRequest{
		Shipper:   shipping.Address{PostalCode: "h2b 1a0", CountryCode: "CA"},
		Recipient: shipping.Address{PostalCode: "k1k 4t3", CountryCode: "CA"},
		Parcels:   []shipping.Parcel{{Weight: &weight, WeightUnit: "KG"}},
	}
}

func TestCreateRateRequest(t *testing.T) {
	mapper := NewMapper(testSettings)

	request, err := mapper.CreateRateRequest(testPayload())
	require.NoError(t, err)

	serialized := request.Serialize()
	assert.Contains(t, serialized, `<mailing-scenario xmlns="http://www.canadapost.ca/ws/ship/rate-v4">`)
	assert.Contains(t, serialized, "<customer-number>2004381</customer-number>")
	assert.Contains(t, serialized, "<weight>1</weight>")
	assert.Contains(t, serialized, "<origin-postal-code>H2B1A0</origin-postal-code>")
	assert.Contains(t, serialized, "<postal-code>K1K4T3</postal-code>")
}

func TestCreateRateRequestInternational(t *testing.T) {
	mapper := NewMapper(testSettings)
	payload := testPayload()
	payload.Recipient = shipping.Address{PostalCode: "E131DZ", CountryCode: "GB"}

	request, err := mapper.CreateRateRequest(payload)
	require.NoError(t, err)

	assert.Contains(t, request.Serialize(), "<country-code>GB</country-code>")
}

func TestCreateRateRequestSingleParcelOnly(t *testing.T) {
	mapper := NewMapper(testSettings)
	weight := 1.0
	payload := testPayload()
	payload.Parcels = []shipping.Parcel{{Weight: &weight}, {Weight: &weight}}

	_, err := mapper.CreateRateRequest(payload)
	assert.ErrorIs(t, err, shipping.ErrMultiParcelNotSupported)
}

const rateResponseFixture = `<?xml version="1.0"?>
<price-quotes xmlns="http://www.canadapost.ca/ws/ship/rate-v4">
  <price-quote>
    <service-code>DOM.EP</service-code>
    <service-link service-name="Expedited Parcel">
      <service-name>Expedited Parcel</service-name>
    </service-link>
    <price-details>
      <base>9.59</base>
      <taxes>
        <gst>0.00</gst>
        <pst>0.00</pst>
        <hst>1.57</hst>
      </taxes>
      <due>12.08</due>
      <adjustments>
        <adjustment>
          <adjustment-code>FUELSC</adjustment-code>
          <adjustment-cost>1.32</adjustment-cost>
        </adjustment>
        <adjustment>
          <adjustment-code>AUTDISC</adjustment-code>
          <adjustment-cost>-0.40</adjustment-cost>
        </adjustment>
      </adjustments>
    </price-details>
    <service-standard>
      <expected-transit-time>2</expected-transit-time>
      <expected-delivery-date>2024-03-06</expected-delivery-date>
    </service-standard>
  </price-quote>
  <price-quote>
    <service-code>DOM.PC</service-code>
    <price-details>
      <base>0</base>
      <due>0</due>
    </price-details>
  </price-quote>
</price-quotes>`

func TestParseRateResponse(t *testing.T) {
	mapper := NewMapper(testSettings)
	response := shipping.NewDeserializable(
		testSettings.Identity(),
		shipping.CapabilityRating,
		xmltree.MustParse(rateResponseFixture),
	)

	rates, messages := mapper.ParseRateResponse(response)

	assert.Empty(t, messages)
	// The due-nothing priority quote is dropped.
	require.Len(t, rates, 1)

	rate := rates[0]
	assert.Equal(t, "canadapost", rate.CarrierName)
	assert.Equal(t, "canadapost_expedited_parcel", rate.Service)
	assert.Equal(t, "CAD", rate.Currency)
	assert.Equal(t, 9.59, rate.BaseCharge)
	assert.Equal(t, 12.08, rate.TotalCharge)
	assert.Equal(t, 1.57, rate.DutiesAndTaxes)
	assert.Equal(t, -0.4, rate.Discount)
	require.NotNil(t, rate.TransitDays)
	assert.Equal(t, 2, *rate.TransitDays)
	assert.Len(t, rate.ExtraCharges, 2)
}

const errorFixture = `<?xml version="1.0"?>
<messages xmlns="http://www.canadapost.ca/ws/messages">
  <message>
    <code>AA004</code>
    <description>You cannot cancel a pickup request in the past.</description>
  </message>
</messages>`

func TestPickupCancel(t *testing.T) {
	mapper := NewMapper(testSettings)

	request, err := mapper.CreatePickupCancelRequest(&shipping.PickupCancelRequest{
		ConfirmationNumber: "0074698052",
	})
	require.NoError(t, err)
	assert.Equal(t, "0074698052", request.Serialize())

	success := shipping.NewDeserializable(
		testSettings.Identity(),
		shipping.CapabilityPickupCancel,
		xmltree.MustParse("<ok/>"),
	)
	details, messages := mapper.ParsePickupCancelResponse(success)
	assert.Empty(t, messages)
	require.NotNil(t, details)
	assert.True(t, details.Success)
	assert.Equal(t, shipping.CapabilityPickupCancel, details.Operation)

	failure := shipping.NewDeserializable(
		testSettings.Identity(),
		shipping.CapabilityPickupCancel,
		xmltree.MustParse(errorFixture),
	)
	details, messages = mapper.ParsePickupCancelResponse(failure)
	assert.Nil(t, details)
	require.Len(t, messages, 1)
	assert.Equal(t, "AA004", messages[0].Code)
}

func TestPickupCancelRequiresConfirmation(t *testing.T) {
	mapper := NewMapper(testSettings)

	_, err := mapper.CreatePickupCancelRequest(&shipping.PickupCancelRequest{})
	require.Error(t, err)

	var fieldErr *shipping.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, shipping.FieldErrorRequired, fieldErr.Violations["confirmation_number"])
}

func TestCapabilities(t *testing.T) {
	caps := shipping.CapabilitiesOf(NewMapper(testSettings))
	assert.ElementsMatch(t, []shipping.Capability{
		shipping.CapabilityRating,
		shipping.CapabilityPickupCancel,
	}, caps)
}
