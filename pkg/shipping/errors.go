package shipping

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for structural input violations.
var (
	// ErrMultiParcelNotSupported indicates a single-parcel-only carrier
	// received more than one package.
	ErrMultiParcelNotSupported = errors.New("multiple parcels are not supported by this carrier")

	// ErrNoParcel indicates an operation that needs a parcel received none.
	ErrNoParcel = errors.New("no parcel provided")

	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")
)

// FieldErrorCode classifies a single field violation.
type FieldErrorCode string

const (
	FieldErrorRequired FieldErrorCode = "required"
	FieldErrorInvalid  FieldErrorCode = "invalid"
)

// FieldError carries every field violation found while resolving a request,
// keyed "parcel[index].field". Validation never short-circuits: the caller
// always sees the complete violation set at once.
type FieldError struct {
	Violations map[string]FieldErrorCode
}

// NewFieldError creates a FieldError from a violation set.
func NewFieldError(violations map[string]FieldErrorCode) *FieldError {
	return &FieldError{Violations: violations}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Violations))
	for k := range e.Violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s is %s", k, e.Violations[k])
	}
	return "invalid request payload: " + strings.Join(parts, "; ")
}

// CapabilityError reports an invocation of a capability the adapter does not
// implement. Callers treat it as a capability-discovery signal rather than a
// transient fault.
type CapabilityError struct {
	Method  string
	Adapter string
}

// NewCapabilityError creates a CapabilityError for the named method on the
// given adapter (a Mapper or Proxy).
func NewCapabilityError(method string, adapter interface{}) *CapabilityError {
	return &CapabilityError{
		Method:  method,
		Adapter: fmt.Sprintf("%T", adapter),
	}
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s is not supported by %s", e.Method, e.Adapter)
}

// Is matches any two CapabilityErrors for the same method.
func (e *CapabilityError) Is(target error) bool {
	t, ok := target.(*CapabilityError)
	if !ok {
		return false
	}
	return e.Method == t.Method
}

// IsCapabilityError reports whether err is (or wraps) a CapabilityError.
func IsCapabilityError(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}
