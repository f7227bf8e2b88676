package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrNotFound indicates that a holding or portfolio does not exist.
	ErrNotFound = errors.New("not found")

	// ErrImportFormat indicates a snapshot that cannot be imported.
	ErrImportFormat = errors.New("invalid import format")

	// ErrUpstreamPrice indicates a symbol the price provider could not resolve.
	ErrUpstreamPrice = errors.New("upstream price unavailable")
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// Invalid is a shorthand for building an *ErrValidation.
func Invalid(field, format string, args ...any) *ErrValidation {
	return &ErrValidation{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ErrNotFoundResource names the missing resource and unwraps to ErrNotFound.
type ErrNotFoundResource struct {
	Resource string
	ID       string
}

func (e *ErrNotFoundResource) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *ErrNotFoundResource) Unwrap() error { return ErrNotFound }

// NotFound creates a not found error for the given resource and identifier.
func NotFound(resource, id string) *ErrNotFoundResource {
	return &ErrNotFoundResource{Resource: resource, ID: id}
}

// ErrImportFormatDetail explains why a snapshot was rejected.
type ErrImportFormatDetail struct {
	Reason string
	Cause  error
}

func (e *ErrImportFormatDetail) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid import format: %s: %v", e.Reason, e.Cause)
	}
	return "invalid import format: " + e.Reason
}

func (e *ErrImportFormatDetail) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrImportFormat, e.Cause}
	}
	return []error{ErrImportFormat}
}

// ImportFormat creates an import format error.
func ImportFormat(reason string, cause error) *ErrImportFormatDetail {
	return &ErrImportFormatDetail{Reason: reason, Cause: cause}
}

// UpstreamPriceError records a symbol that could not be priced.
type UpstreamPriceError struct {
	Symbol string `json:"symbol"`
	Err    error  `json:"-"`
}

func (e *UpstreamPriceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("price for %s unavailable", e.Symbol)
	}
	return fmt.Sprintf("price for %s unavailable: %v", e.Symbol, e.Err)
}

func (e *UpstreamPriceError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstreamPrice, e.Err}
	}
	return []error{ErrUpstreamPrice}
}

// Reason returns the underlying failure as text, for JSON responses.
func (e *UpstreamPriceError) Reason() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// MarshalJSON renders the failure as {"symbol", "reason"}.
func (e *UpstreamPriceError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol string `json:"symbol"`
		Reason string `json:"reason,omitempty"`
	}{e.Symbol, e.Reason()})
}

// IsValidation reports whether err carries an *ErrValidation.
func IsValidation(err error) bool {
	var v *ErrValidation
	return errors.As(err, &v)
}

// AsValidation extracts the *ErrValidation from err, if any.
func AsValidation(err error) (*ErrValidation, bool) {
	var v *ErrValidation
	ok := errors.As(err, &v)
	return v, ok
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsImportFormat(err error) bool { return errors.Is(err, ErrImportFormat) }
