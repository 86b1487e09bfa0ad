// Package ups provides integration with the UPS Freight SOAP rating API.
package ups

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

const carrierName = "ups"

// Settings holds UPS account configuration.
type Settings struct {
	Username      string
	Password      string
	AccessLicense string
	CarrierID     string
	BaseURL       string
	Timeout       time.Duration
}

// Identity returns the carrier identity for these settings.
func (s Settings) Identity() shipping.Identity {
	return shipping.Identity{CarrierName: carrierName, CarrierID: s.CarrierID}
}

// Mapper translates unified payloads to and from UPS freight SOAP
// documents.
type Mapper struct {
	settings Settings
}

// NewMapper creates a UPS mapper.
func NewMapper(settings Settings) *Mapper {
	return &Mapper{settings: settings}
}

// Identity returns the carrier identity.
func (m *Mapper) Identity() shipping.Identity {
	return m.settings.Identity()
}

var (
	_ shipping.Mapper     = (*Mapper)(nil)
	_ shipping.RateMapper = (*Mapper)(nil)
)

// Proxy speaks to the UPS freight rating endpoint.
type Proxy struct {
	settings   Settings
	httpClient *http.Client
	logger     *otelzap.Logger
	tracer     trace.Tracer
}

// NewProxy creates a UPS proxy.
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
	_ shipping.Proxy     = (*Proxy)(nil)
	_ shipping.RateProxy = (*Proxy)(nil)
)

// FetchRates submits a freight rate envelope.
func (p *Proxy) FetchRates(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	ctx, span := p.tracer.Start(ctx, "ups.rates")
	defer span.End()

	body := request.Serialize()
	p.logger.Ctx(ctx).Info("Calling UPS freight rating endpoint",
		zap.Int("request_bytes", len(body)),
	)

	endpoint := p.settings.BaseURL + "/webservices/FreightRate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader([]byte(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "FreightRate")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ups gateway: %w", err)
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
	return shipping.NewDeserializable(p.Identity(), shipping.CapabilityRating, root), nil
}
