package main

import (
	"context"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"

	"github.com/delivro/shipcore/internal/config"
	"github.com/delivro/shipcore/internal/telemetry"
	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/carriers/canadapost"
	"github.com/delivro/shipcore/pkg/shipping/carriers/dhl"
	"github.com/delivro/shipcore/pkg/shipping/carriers/ups"
	"github.com/delivro/shipcore/pkg/shipping/carriers/usps"
	"github.com/delivro/shipcore/pkg/shipping/mock"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return telemetry.NoopTracer(cfg.ServiceName), func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version, cfg.Attributes()...)
}

// initCarrierRegistry registers every enabled carrier. A carrier flagged
// use-mock keeps its real mapper semantics out of the picture entirely and
// runs through the standalone mock pair under its own carrier ID.
func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *shipping.Registry {
	registry := shipping.NewRegistry()

	registerMock := func(carrierID string) {
		settings := mock.Settings{CarrierID: carrierID}
		registry.Register(mock.NewMapper(settings), mock.NewProxy(settings))
	}

	if cfg.DHLEnabled {
		if cfg.DHLUseMock {
			registerMock("dhl")
		} else {
			settings := dhl.Settings{
				SiteID:        cfg.DHLSiteID,
				Password:      cfg.DHLPassword,
				AccountNumber: cfg.DHLAccountNumber,
				CarrierID:     "dhl",
				BaseURL:       cfg.DHLBaseURL,
			}
			registry.Register(dhl.NewMapper(settings), dhl.NewProxy(settings, logger, tracer))
		}
	}

	if cfg.UPSEnabled {
		if cfg.UPSUseMock {
			registerMock("ups")
		} else {
			settings := ups.Settings{
				Username:      cfg.UPSUsername,
				Password:      cfg.UPSPassword,
				AccessLicense: cfg.UPSAccessLicense,
				CarrierID:     "ups",
				BaseURL:       cfg.UPSBaseURL,
			}
			registry.Register(ups.NewMapper(settings), ups.NewProxy(settings, logger, tracer))
		}
	}

	if cfg.USPSEnabled {
		if cfg.USPSUseMock {
			registerMock("usps")
		} else {
			settings := usps.Settings{
				UserID:    cfg.USPSUserID,
				CarrierID: "usps",
				BaseURL:   cfg.USPSBaseURL,
			}
			registry.Register(usps.NewMapper(settings), usps.NewProxy(settings, logger, tracer))
		}
	}

	if cfg.CanadaPostEnabled {
		if cfg.CanadaPostUseMock {
			registerMock("canadapost")
		} else {
			settings := canadapost.Settings{
				APIKey:         cfg.CanadaPostAPIKey,
				APISecret:      cfg.CanadaPostAPISecret,
				CustomerNumber: cfg.CanadaPostCustomerNumber,
				ContractID:     cfg.CanadaPostContractID,
				CarrierID:      "canadapost",
				BaseURL:        cfg.CanadaPostBaseURL,
			}
			registry.Register(canadapost.NewMapper(settings), canadapost.NewProxy(settings, logger, tracer))
		}
	}

	if cfg.MockEnabled {
		registerMock("mock")
	}

	return registry
}
