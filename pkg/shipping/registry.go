package shipping

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages configured carriers, each a mapper/proxy pair keyed by
// carrier ID. Adapters are stateless, so a registered pair is safe to use
// from any number of goroutines without synchronization beyond the
// registry's own map lock.
type Registry struct {
	carriers map[string]carrierEntry
	mu       sync.RWMutex
}

type carrierEntry struct {
	mapper Mapper
	proxy  Proxy
}

// NewRegistry creates an empty carrier registry.
func NewRegistry() *Registry {
	return &Registry{
		carriers: make(map[string]carrierEntry),
	}
}

func registryKey(id Identity) string {
	if id.CarrierID != "" {
		return id.CarrierID
	}
	return id.CarrierName
}

// Register adds a carrier's mapper/proxy pair, replacing any previous entry
// for the same carrier ID.
func (r *Registry) Register(m Mapper, p Proxy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carriers[registryKey(m.Identity())] = carrierEntry{mapper: m, proxy: p}
}

// Get returns the mapper/proxy pair registered under the given carrier ID.
func (r *Registry) Get(name string) (Mapper, Proxy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.carriers[name]; ok {
		return entry.mapper, entry.proxy, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, name)
}

// Names returns the IDs of all registered carriers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.carriers))
	for name := range r.carriers {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered carriers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carriers)
}

// Capabilities returns the capability set the named carrier supports,
// derived statically from the interfaces its mapper implements.
func (r *Registry) Capabilities(name string) ([]Capability, error) {
	m, _, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return CapabilitiesOf(m), nil
}

func (r *Registry) entries(carriers []string) ([]carrierEntry, []error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(carriers) == 0 {
		all := make([]carrierEntry, 0, len(r.carriers))
		for _, entry := range r.carriers {
			all = append(all, entry)
		}
		return all, nil
	}

	var selected []carrierEntry
	var errs []error
	for _, name := range carriers {
		entry, ok := r.carriers[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrCarrierNotFound, name))
			continue
		}
		selected = append(selected, entry)
	}
	return selected, errs
}

// FetchRates requests rates from the named carriers in parallel, or from
// every registered carrier when the list is empty. Payload validation runs
// at request-construction time per carrier, strictly before that carrier's
// network call; a failure for one carrier is collected and never aborts the
// others. Carrier-reported messages are merged alongside whatever rates
// could still be produced.
func (r *Registry) FetchRates(ctx context.Context, payload *RateRequest, carriers ...string) ([]RateDetails, []Message, []error) {
	entries, errs := r.entries(carriers)
	if len(entries) == 0 {
		if len(errs) == 0 {
			errs = append(errs, ErrCarrierNotFound)
		}
		return nil, nil, errs
	}

	var (
		rates    []RateDetails
		messages []Message
		mu       sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			id := entry.mapper.Identity()

			request, err := CreateRateRequest(entry.mapper, payload)
			if err != nil {
				// Invalid payload or unsupported capability: reject
				// before any network traffic for this carrier.
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", registryKey(id), err))
				mu.Unlock()
				return nil
			}

			proxy, ok := entry.proxy.(RateProxy)
			if !ok {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", registryKey(id), NewCapabilityError("FetchRates", entry.proxy)))
				mu.Unlock()
				return nil
			}

			response, err := proxy.FetchRates(ctx, request)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", registryKey(id), err))
				mu.Unlock()
				return nil
			}

			details, msgs, err := ParseRateResponse(entry.mapper, response)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", registryKey(id), err))
				return nil
			}
			rates = append(rates, details...)
			messages = append(messages, msgs...)
			return nil
		})
	}

	g.Wait()
	return rates, messages, errs
}
