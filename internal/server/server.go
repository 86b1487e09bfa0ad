// Package server exposes the carrier registry over a small JSON/HTTP
// surface: health, Prometheus metrics, carrier discovery, and rating
// fan-out.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/delivro/shipcore/internal/telemetry"
	"github.com/delivro/shipcore/pkg/shipping"
)

// Server is the HTTP server for the shipping service.
type Server struct {
	port     int
	registry *shipping.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, registry *shipping.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// Handler returns the full route table. Exposed separately from Run so
// tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/v1/carriers", s.handleCarriers)
	mux.HandleFunc("/v1/rates", s.handleRates)
	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ============================================================================
// Carrier discovery
// ============================================================================

type carrierInfo struct {
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed, use GET")
		return
	}

	var carriers []carrierInfo
	for _, name := range s.registry.Names() {
		caps, err := s.registry.Capabilities(name)
		if err != nil {
			continue
		}
		info := carrierInfo{Name: name}
		for _, c := range caps {
			info.Capabilities = append(info.Capabilities, string(c))
		}
		carriers = append(carriers, info)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"carriers": carriers})
}

// ============================================================================
// Rating
// ============================================================================

type addressInput struct {
	PersonName   string `json:"person_name"`
	CompanyName  string `json:"company_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	StateCode    string `json:"state_code"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country_code"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email"`
	Residential  bool   `json:"residential"`
}

type parcelInput struct {
	ID            string   `json:"id"`
	Width         *float64 `json:"width"`
	Height        *float64 `json:"height"`
	Length        *float64 `json:"length"`
	Weight        *float64 `json:"weight"`
	WeightUnit    string   `json:"weight_unit"`
	DimensionUnit string   `json:"dimension_unit"`
	PackagePreset string   `json:"package_preset"`
	PackagingType string   `json:"packaging_type"`
	IsDocument    bool     `json:"is_document"`
	Description   string   `json:"description"`
	Reference     string   `json:"reference"`
}

type rateRequestInput struct {
	Carriers  []string               `json:"carriers"`
	Shipper   addressInput           `json:"shipper"`
	Recipient addressInput           `json:"recipient"`
	Parcels   []parcelInput          `json:"parcels"`
	Services  []string               `json:"services"`
	Options   map[string]interface{} `json:"options"`
	Reference string                 `json:"reference"`
}

type rateOutput struct {
	CarrierName    string         `json:"carrier_name"`
	CarrierID      string         `json:"carrier_id"`
	Service        string         `json:"service"`
	Currency       string         `json:"currency"`
	BaseCharge     float64        `json:"base_charge"`
	TotalCharge    float64        `json:"total_charge"`
	DutiesAndTaxes float64        `json:"duties_and_taxes"`
	Discount       float64        `json:"discount"`
	TransitDays    *int           `json:"transit_days,omitempty"`
	ExtraCharges   []chargeOutput `json:"extra_charges,omitempty"`
}

type chargeOutput struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type messageOutput struct {
	CarrierName string `json:"carrier_name"`
	CarrierID   string `json:"carrier_id"`
	Code        string `json:"code"`
	Text        string `json:"text"`
}

type ratesResponse struct {
	Rates    []rateOutput    `json:"rates"`
	Messages []messageOutput `json:"messages,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var input rateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	start := time.Now()
	payload := rateInputToModel(&input)
	rates, messages, errs := s.registry.FetchRates(r.Context(), payload, input.Carriers...)
	duration := time.Since(start).Seconds()

	status := "ok"
	if len(rates) == 0 && len(errs) > 0 {
		status = "error"
	}
	s.metrics.RecordRequest("rates", "all", status, duration)
	perCarrier := make(map[string]int)
	for _, rate := range rates {
		perCarrier[rate.CarrierName]++
	}
	for carrier, count := range perCarrier {
		s.metrics.RecordRates(carrier, count)
	}

	response := ratesResponse{Rates: make([]rateOutput, 0, len(rates))}
	for _, rate := range rates {
		response.Rates = append(response.Rates, rateToOutput(rate))
	}
	for _, msg := range messages {
		response.Messages = append(response.Messages, messageOutput{
			CarrierName: msg.CarrierName,
			CarrierID:   msg.CarrierID,
			Code:        msg.Code,
			Text:        msg.Text,
		})
	}
	for _, err := range errs {
		response.Errors = append(response.Errors, err.Error())
		s.logger.Ctx(r.Context()).Warn("Carrier rating failure", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, response)
}

func rateInputToModel(input *rateRequestInput) *shipping.RateRequest {
	payload := &shipping.RateRequest{
		Shipper:   addressInputToModel(input.Shipper),
		Recipient: addressInputToModel(input.Recipient),
		Services:  input.Services,
		Options:   input.Options,
		Reference: input.Reference,
	}
	for _, p := range input.Parcels {
		payload.Parcels = append(payload.Parcels, shipping.Parcel{
			ID:            p.ID,
			Width:         p.Width,
			Height:        p.Height,
			Length:        p.Length,
			Weight:        p.Weight,
			WeightUnit:    p.WeightUnit,
			DimensionUnit: p.DimensionUnit,
			PackagePreset: p.PackagePreset,
			PackagingType: p.PackagingType,
			IsDocument:    p.IsDocument,
			Description:   p.Description,
			Reference:     p.Reference,
		})
	}
	return payload
}

func addressInputToModel(input addressInput) shipping.Address {
	return shipping.Address{
		PersonName:   input.PersonName,
		CompanyName:  input.CompanyName,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		StateCode:    input.StateCode,
		PostalCode:   input.PostalCode,
		CountryCode:  input.CountryCode,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,
		Residential:  input.Residential,
	}
}

func rateToOutput(rate shipping.RateDetails) rateOutput {
	out := rateOutput{
		CarrierName:    rate.CarrierName,
		CarrierID:      rate.CarrierID,
		Service:        rate.Service,
		Currency:       rate.Currency,
		BaseCharge:     rate.BaseCharge,
		TotalCharge:    rate.TotalCharge,
		DutiesAndTaxes: rate.DutiesAndTaxes,
		Discount:       rate.Discount,
		TransitDays:    rate.TransitDays,
	}
	for _, charge := range rate.ExtraCharges {
		out.ExtraCharges = append(out.ExtraCharges, chargeOutput{
			Name:     charge.Name,
			Amount:   charge.Amount,
			Currency: charge.Currency,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
