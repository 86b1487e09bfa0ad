// Package canadapost provides integration with the Canada Post shipping
// web services.
package canadapost

import (
	"bytes"
	"context"
	"encoding/base64"
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

const carrierName = "canadapost"

// Settings holds Canada Post account configuration.
type Settings struct {
	APIKey         string
	APISecret      string
	CustomerNumber string
	ContractID     string
	CarrierID      string
	BaseURL        string
	Timeout        time.Duration
}

// Identity returns the carrier identity for these settings.
func (s Settings) Identity() shipping.Identity {
	return shipping.Identity{CarrierName: carrierName, CarrierID: s.CarrierID}
}

// Mapper translates unified payloads to and from Canada Post XML documents.
type Mapper struct {
	settings Settings
}

// NewMapper creates a Canada Post mapper.
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
	_ shipping.PickupCancelMapper = (*Mapper)(nil)
)

// Proxy speaks to the Canada Post REST/XML gateway.
type Proxy struct {
	settings   Settings
	httpClient *http.Client
	logger     *otelzap.Logger
	tracer     trace.Tracer
}

// NewProxy creates a Canada Post proxy.
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
	_ shipping.PickupCancelProxy = (*Proxy)(nil)
)

// FetchRates submits a mailing scenario to the rating service.
func (p *Proxy) FetchRates(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	ctx, span := p.tracer.Start(ctx, "canadapost.rates")
	defer span.End()

	p.logger.Ctx(ctx).Info("Calling Canada Post rating service",
		zap.String("customer_number", p.settings.CustomerNumber),
	)

	resp, err := p.do(ctx, http.MethodPost, "/rs/ship/price",
		"application/vnd.cpc.ship.rate-v4+xml", request.Serialize())
	if err != nil {
		return nil, err
	}
	return p.deserialize(resp, shipping.CapabilityRating)
}

// CancelPickup removes a scheduled pickup. The serialized request is the
// bare confirmation number; it addresses the resource, the delete verb
// carries the intent.
func (p *Proxy) CancelPickup(ctx context.Context, request shipping.Serializable) (*shipping.Deserializable, error) {
	ctx, span := p.tracer.Start(ctx, "canadapost.pickup.cancel")
	defer span.End()

	confirmation := request.Serialize()
	p.logger.Ctx(ctx).Info("Cancelling Canada Post pickup",
		zap.String("confirmation_number", confirmation),
	)

	path := fmt.Sprintf("/enab/%s/pickuprequest/%s", p.settings.CustomerNumber, confirmation)
	resp, err := p.do(ctx, http.MethodDelete, path, "application/vnd.cpc.pickuprequest+xml", "")
	if err != nil {
		return nil, err
	}
	return p.deserialize(resp, shipping.CapabilityPickupCancel)
}

func (p *Proxy) do(ctx context.Context, method, path, contentType, body string) (*http.Response, error) {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, p.settings.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(p.settings.APIKey + ":" + p.settings.APISecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept-Language", "en-CA")
	req.Header.Set("Accept", contentType)
	if body != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canadapost gateway: %w", err)
	}
	return resp, nil
}

// An empty body is a legitimate success response for deletes; it maps to
// an empty placeholder document so the parser sees a tree either way.
func (p *Proxy) deserialize(resp *http.Response, op shipping.Capability) (*shipping.Deserializable, error) {
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte("<ok/>")
	}

	root, err := xmltree.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return shipping.NewDeserializable(p.Identity(), op, root), nil
}
