package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryNone             ErrorCategory = "none"
	CategoryNetworkError     ErrorCategory = "network_error"
	CategoryInvalidResponse  ErrorCategory = "invalid_response"
	CategoryGatewayError     ErrorCategory = "gateway_error"
	CategoryIntegrityFailure ErrorCategory = "integrity_failure"
	CategoryInvalidRequest   ErrorCategory = "invalid_request"
	CategorySystemError      ErrorCategory = "system_error"
)

// ErrInvalidResponseHash is matched by every IntegrityError via errors.Is
var ErrInvalidResponseHash = stderrors.New("invalid response hash")

// ErrResponseTooLarge is wrapped by a TransportError when a reply exceeds the read limit
var ErrResponseTooLarge = stderrors.New("response too large")

// TransportError is a network or HTTP level failure talking to the gateway
type TransportError struct {
	URL        string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 && e.Err != nil {
		return fmt.Sprintf("transport error: %s returned HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s returned HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError creates a new transport error
func NewTransportError(url string, statusCode int, err error) *TransportError {
	return &TransportError{URL: url, StatusCode: statusCode, Err: err}
}

// ParseError reports a gateway response that is not a usable XML document
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed gateway response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed gateway response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a new parse error
func NewParseError(reason string, err error) *ParseError {
	return &ParseError{Reason: reason, Err: err}
}

// GatewayError is the gateway's own ERROR element, surfaced as decoded
type GatewayError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

// IntegrityError signals that a response hash did not match the recomputed one.
// Either the response was altered in transit or the secret is misconfigured.
type IntegrityError struct {
	Operation    string
	OrderID      string
	ResponseHash string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s (order %s)", e.Operation, ErrInvalidResponseHash, e.OrderID)
}

// Is makes errors.Is(err, ErrInvalidResponseHash) hold for every IntegrityError
func (e *IntegrityError) Is(target error) bool {
	return target == ErrInvalidResponseHash
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// CategoryOf classifies err for logging and metrics
func CategoryOf(err error) ErrorCategory {
	if err == nil {
		return CategoryNone
	}

	var (
		transportErr  *TransportError
		parseErr      *ParseError
		gatewayErr    *GatewayError
		validationErr *ValidationError
	)
	switch {
	case stderrors.Is(err, ErrInvalidResponseHash):
		return CategoryIntegrityFailure
	case stderrors.As(err, &gatewayErr):
		return CategoryGatewayError
	case stderrors.As(err, &parseErr):
		return CategoryInvalidResponse
	case stderrors.As(err, &transportErr):
		return CategoryNetworkError
	case stderrors.As(err, &validationErr):
		return CategoryInvalidRequest
	default:
		return CategorySystemError
	}
}

// IsRetriable reports whether err is a transport failure, the only category worth
// retrying; the client itself never retries. A failure after the request was sent
// (a read timeout, a 5xx) leaves the gateway outcome unknown: a SUBSCRIPTIONPAYMENT
// may already have charged the card, so do not resend one without first checking
// the order with the gateway.
func IsRetriable(err error) bool {
	return CategoryOf(err) == CategoryNetworkError
}
