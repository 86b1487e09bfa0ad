// Package dhl provides integration with the DHL Express XML-PI API.
package dhl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

const carrierName = "dhl"

// Settings holds DHL account configuration.
type Settings struct {
	SiteID        string
	Password      string
	AccountNumber string
	CarrierID     string
	BaseURL       string
	Timeout       time.Duration
}

// Identity returns the carrier identity for these settings.
func (s Settings) Identity() shipping.Identity {
	return shipping.Identity{CarrierName: carrierName, CarrierID: s.CarrierID}
}

// Mapper translates unified payloads to and from DHL XML-PI documents.
type Mapper struct {
	settings Settings
}

// NewMapper creates a DHL mapper.
func NewMapper(settings Settings) *Mapper {
	return &Mapper{settings: settings}
}

// Identity returns the carrier identity.
func (m *Mapper) Identity() shipping.Identity {
	return m.settings.Identity()
}

var (
	_ shipping.Mapper             = (*Mapper)(nil)
	_ shipping.RateMapper         = (*Mapper)(nil)
	_ shipping.PickupMapper       = (*Mapper)(nil)
	_ shipping.PickupUpdateMapper = (*Mapper)(nil)
)

// Proxy speaks to the DHL XML-PI gateway over HTTP.
type Proxy struct {
	settings   Settings
	httpClient *http.Client
	logger     *otelzap.Logger
	tracer     trace.Tracer
}

// NewProxy creates a DHL proxy.
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
	_ shipping.Proxy             = (*Proxy)(nil)
	_ shipping.RateProxy         = (*Proxy)(nil)
	_ shipping.PickupProxy       = (*Proxy)(nil)
	_ shipping.PickupUpdateProxy = (*Proxy)(nil)
)

// FetchRates submits a DCT quote request.
func (p *Proxy) FetchRates(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	return p.send(ctx, shipping.CapabilityRating, "dhl.rates", request)
}

// SchedulePickup submits a pickup booking request.
func (p *Proxy) SchedulePickup(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	return p.send(ctx, shipping.CapabilityPickupCreate, "dhl.pickup.create", request)
}

// UpdatePickup submits a pickup modification request.
func (p *Proxy) UpdatePickup(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	return p.send(ctx, shipping.CapabilityPickupUpdate, "dhl.pickup.update", request)
}

// The DHL XML-PI gateway exposes a single endpoint; the document root
// decides the operation.
func (p *Proxy) send(ctx context.Context, op shipping.Capability, span string, request shipping.Serializable) (*shipping.Deserializable, error) {
	ctx, sp := p.tracer.Start(ctx, span)
	defer sp.End()

	body := request.Serialize()
	p.logger.Ctx(ctx).Info("Calling DHL XML-PI gateway",
		zap.String("operation", string(op)),
		zap.Int("request_bytes", len(body)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.settings.BaseURL, bytes.NewReader([]byte(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dhl gateway: %w", err)
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
	return shipping.NewDeserializable(p.Identity(), op, root), nil
}
