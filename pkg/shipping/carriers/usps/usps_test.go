package usps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

var testSettings = Settings{UserID: "12XXXX99", CarrierID: "usps-webtools"}

func TestCreateTrackingRequest(t *testing.T) {
	mapper := NewMapper(testSettings)

	request, err := mapper.CreateTrackingRequest(&shipping.TrackingRequest{
		TrackingNumbers: []string{"9400100000000000000001", "9400100000000000000002"},
	})
	require.NoError(t, err)

	serialized := request.Serialize()
	assert.Contains(t, serialized, `<TrackFieldRequest USERID="12XXXX99">`)
	assert.Contains(t, serialized, `<TrackID ID="9400100000000000000001">`)
	assert.Contains(t, serialized, `<TrackID ID="9400100000000000000002">`)
}

func TestCreateTrackingRequestValidation(t *testing.T) {
	mapper := NewMapper(testSettings)

	_, err := mapper.CreateTrackingRequest(&shipping.TrackingRequest{})
	require.Error(t, err)

	var fieldErr *shipping.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, shipping.FieldErrorRequired, fieldErr.Violations["tracking_numbers"])
}

const trackingResponseFixture = `<?xml version="1.0"?>
<TrackResponse>
  <TrackInfo ID="9400100000000000000001">
    <TrackSummary>
      <EventTime>11:07 am</EventTime>
      <EventDate>March 4, 2024</EventDate>
      <Event>Delivered</Event>
      <EventCity>OTTAWA</EventCity>
      <EventState>ON</EventState>
      <EventCode>01</EventCode>
    </TrackSummary>
    <TrackDetail>
      <EventTime>8:12 am</EventTime>
      <EventDate>March 4, 2024</EventDate>
      <Event>Out for Delivery</Event>
      <EventCity>OTTAWA</EventCity>
      <EventState>ON</EventState>
      <EventCode>OF</EventCode>
    </TrackDetail>
  </TrackInfo>
  <TrackInfo ID="9400100000000000000002">
    <Error>
      <Number>-2147219283</Number>
      <Description>A status update is not yet available.</Description>
    </Error>
  </TrackInfo>
</TrackResponse>`

func TestParseTrackingResponse(t *testing.T) {
	mapper := NewMapper(testSettings)
	response := shipping.NewDeserializable(
		testSettings.Identity(),
		shipping.CapabilityTracking,
		xmltree.MustParse(trackingResponseFixture),
	)

	details, messages := mapper.ParseTrackingResponse(response)

	// Results and per-number errors coexist.
	require.Len(t, details, 2)
	require.Len(t, messages, 1)

	first := details[0]
	assert.Equal(t, "usps", first.CarrierName)
	assert.Equal(t, "9400100000000000000001", first.TrackingNumber)
	require.Len(t, first.Events, 2)
	assert.Equal(t, "Out for Delivery", first.Events[0].Description)
	assert.Equal(t, "OTTAWA, ON", first.Events[0].Location)
	assert.Equal(t, "Delivered", first.Events[1].Description)

	assert.Equal(t, "-2147219283", messages[0].Code)
	assert.Equal(t, "A status update is not yet available.", messages[0].Text)
}

const errorRootFixture = `<?xml version="1.0"?>
<Error>
  <Number>80040B1A</Number>
  <Description>Authorization failure.</Description>
</Error>`

func TestParseTrackingResponseErrorRoot(t *testing.T) {
	mapper := NewMapper(testSettings)
	response := shipping.NewDeserializable(
		testSettings.Identity(),
		shipping.CapabilityTracking,
		xmltree.MustParse(errorRootFixture),
	)

	details, messages := mapper.ParseTrackingResponse(response)

	assert.Empty(t, details)
	require.Len(t, messages, 1)
	assert.Equal(t, "80040B1A", messages[0].Code)
	assert.Equal(t, "Authorization failure.", messages[0].Text)
}
