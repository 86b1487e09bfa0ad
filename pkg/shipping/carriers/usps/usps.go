// Package usps provides integration with the USPS Web Tools tracking API.
package usps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

const carrierName = "usps"

// Settings holds USPS Web Tools configuration.
type Settings struct {
	UserID    string
	CarrierID string
	BaseURL   string
	Timeout   time.Duration
}

// Identity returns the carrier identity for these settings.
func (s Settings) Identity() shipping.Identity {
	return shipping.Identity{CarrierName: carrierName, CarrierID: s.CarrierID}
}

// Mapper translates unified payloads to and from USPS Web Tools documents.
type Mapper struct {
	settings Settings
}

// NewMapper creates a USPS mapper.
func NewMapper(settings Settings) *Mapper {
	return &Mapper{settings: settings}
}

// Identity returns the carrier identity.
func (m *Mapper) Identity() shipping.Identity {
	return m.settings.Identity()
}

var (
	_ shipping.Mapper         = (*Mapper)(nil)
	_ shipping.TrackingMapper = (*Mapper)(nil)
)

// Proxy speaks to the USPS Web Tools gateway. Web Tools is a query-string
// API: the serialized request document travels URL-encoded in the XML
// parameter of a GET.
type Proxy struct {
	settings   Settings
	httpClient *http.Client
	logger     *otelzap.Logger
	tracer     trace.Tracer
}

// NewProxy creates a USPS proxy.
func NewProxy(settings Settings, logger *otelzap.Logger, tracer trace.Tracer) *Proxy {
	timeout := settings.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Proxy{
		settings:   settings,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		tracer:     tracer,
	}
}

// Identity returns the carrier identity.
func (p *Proxy) Identity() shipping.Identity {
	return p.settings.Identity()
}

var (
	_ shipping.Proxy         = (*Proxy)(nil)
	_ shipping.TrackingProxy = (*Proxy)(nil)
)

// FetchTracking submits a TrackV2 field request.
func (p *Proxy) FetchTracking(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	ctx, span := p.tracer.Start(ctx, "usps.tracking")
	defer span.End()

	query := url.Values{}
	query.Set("API", "TrackV2")
	query.Set("XML", request.Serialize())
	endpoint := p.settings.BaseURL + "/ShippingAPI.dll?" + query.Encode()

	p.logger.Ctx(ctx).Info("Calling USPS Web Tools gateway",
		zap.String("api", "TrackV2"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usps gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	root, err := xmltree.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return shipping.NewDeserializable(p.Identity(), shipping.CapabilityTracking, root), nil
}
