package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

func rateResponse(id Identity) *Deserializable {
	return NewDeserializable(id, CapabilityRating, xmltree.MustParse("<rates/>"))
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	id := Identity{CarrierName: "canadapost", CarrierID: "cp-prod"}

	registry.Register(rateOnlyMapper{id: id}, stubProxy{id: id})

	mapper, proxy, err := registry.Get("cp-prod")
	require.NoError(t, err)
	assert.Equal(t, id, mapper.Identity())
	assert.Equal(t, id, proxy.Identity())

	_, _, err = registry.Get("fedex")
	assert.ErrorIs(t, err, ErrCarrierNotFound)
}

func TestRegistryKeyFallsBackToName(t *testing.T) {
	registry := NewRegistry()
	id := Identity{CarrierName: "usps"}

	registry.Register(rateOnlyMapper{id: id}, stubProxy{id: id})

	_, _, err := registry.Get("usps")
	assert.NoError(t, err)
}

func TestRegistryNamesAndCount(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"dhl", "ups"} {
		id := Identity{CarrierName: name}
		registry.Register(rateOnlyMapper{id: id}, stubProxy{id: id})
	}

	assert.Equal(t, 2, registry.Count())
	assert.ElementsMatch(t, []string{"dhl", "ups"}, registry.Names())
}

func TestRegistryCapabilities(t *testing.T) {
	registry := NewRegistry()
	id := Identity{CarrierName: "mock"}
	registry.Register(fullMapper{id: id}, stubProxy{id: id})

	caps, err := registry.Capabilities("mock")
	require.NoError(t, err)
	assert.Len(t, caps, 7)

	_, err = registry.Capabilities("nope")
	assert.ErrorIs(t, err, ErrCarrierNotFound)
}

func TestFetchRatesMergesCarriers(t *testing.T) {
	registry := NewRegistry()

	dhl := Identity{CarrierName: "dhl"}
	registry.Register(
		rateOnlyMapper{id: dhl, rates: []RateDetails{{CarrierName: "dhl", Service: "express", TotalCharge: 42}}},
		stubProxy{id: dhl, response: rateResponse(dhl)},
	)

	ups := Identity{CarrierName: "ups"}
	registry.Register(
		rateOnlyMapper{
			id:       ups,
			rates:    []RateDetails{{CarrierName: "ups", Service: "freight", TotalCharge: 99}},
			messages: []Message{{CarrierName: "ups", Code: "110971", Text: "rate is estimated"}},
		},
		stubProxy{id: ups, response: rateResponse(ups)},
	)

	rates, messages, errs := registry.FetchRates(context.Background(), &RateRequest{})

	assert.Empty(t, errs)
	assert.Len(t, rates, 2)
	require.Len(t, messages, 1)
	assert.Equal(t, "110971", messages[0].Code)
}

func TestFetchRatesSelectsCarriers(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"dhl", "ups"} {
		id := Identity{CarrierName: name}
		registry.Register(
			rateOnlyMapper{id: id, rates: []RateDetails{{CarrierName: name}}},
			stubProxy{id: id, response: rateResponse(id)},
		)
	}

	rates, _, errs := registry.FetchRates(context.Background(), &RateRequest{}, "dhl")

	assert.Empty(t, errs)
	require.Len(t, rates, 1)
	assert.Equal(t, "dhl", rates[0].CarrierName)
}

func TestFetchRatesUnknownCarrierCollected(t *testing.T) {
	registry := NewRegistry()
	id := Identity{CarrierName: "dhl"}
	registry.Register(
		rateOnlyMapper{id: id, rates: []RateDetails{{CarrierName: "dhl"}}},
		stubProxy{id: id, response: rateResponse(id)},
	)

	rates, _, errs := registry.FetchRates(context.Background(), &RateRequest{}, "dhl", "fedex")

	// The unknown carrier is reported without aborting the batch.
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrCarrierNotFound)
	assert.Len(t, rates, 1)
}

func TestFetchRatesEmptyRegistry(t *testing.T) {
	registry := NewRegistry()

	rates, _, errs := registry.FetchRates(context.Background(), &RateRequest{})

	assert.Empty(t, rates)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrCarrierNotFound)
}

func TestFetchRatesValidationBeforeNetwork(t *testing.T) {
	registry := NewRegistry()
	id := Identity{CarrierName: "dhl"}
	calls := 0
	registry.Register(
		rateOnlyMapper{id: id, createErr: NewFieldError(map[string]FieldErrorCode{
			"parcel[0].weight": FieldErrorRequired,
		})},
		stubProxy{id: id, calls: &calls},
	)

	rates, _, errs := registry.FetchRates(context.Background(), &RateRequest{})

	assert.Empty(t, rates)
	require.Len(t, errs, 1)

	var fieldErr *FieldError
	assert.True(t, errors.As(errs[0], &fieldErr))
	// The proxy is never touched when request construction fails.
	assert.Zero(t, calls)
}

func TestFetchRatesProxyFailureIsolated(t *testing.T) {
	registry := NewRegistry()

	down := Identity{CarrierName: "dhl"}
	registry.Register(
		rateOnlyMapper{id: down},
		stubProxy{id: down, err: errors.New("gateway timeout")},
	)

	up := Identity{CarrierName: "ups"}
	registry.Register(
		rateOnlyMapper{id: up, rates: []RateDetails{{CarrierName: "ups"}}},
		stubProxy{id: up, response: rateResponse(up)},
	)

	rates, _, errs := registry.FetchRates(context.Background(), &RateRequest{})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "dhl")
	require.Len(t, rates, 1)
	assert.Equal(t, "ups", rates[0].CarrierName)
}

func TestFetchRatesCapabilityUnsupported(t *testing.T) {
	registry := NewRegistry()
	id := Identity{CarrierName: "pickup-only"}

	registry.Register(pickupOnlyMapper{id: id}, stubProxy{id: id})

	rates, _, errs := registry.FetchRates(context.Background(), &RateRequest{})

	assert.Empty(t, rates)
	require.Len(t, errs, 1)
	assert.True(t, IsCapabilityError(errs[0]))
}

// pickupOnlyMapper implements only pickup scheduling.
type pickupOnlyMapper struct {
	id Identity
}

func (m pickupOnlyMapper) Identity() Identity { return m.id }

func (m pickupOnlyMapper) CreatePickupRequest(*PickupRequest) (Serializable, error) {
	return NewSerializable("<Pickup/>", nil), nil
}

func (m pickupOnlyMapper) ParsePickupResponse(*Deserializable) (*PickupDetails, []Message) {
	return nil, nil
}

var _ PickupMapper = pickupOnlyMapper{}
