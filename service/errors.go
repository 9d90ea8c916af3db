package service

import (
	"errors"
	"fmt"
)

const (
	// ValidationMessage is shown when the customer id is blank.
	ValidationMessage = "Ingresa un customer_id (ej: N001)"
	// GenericErrorMessage is used when a failure carries no usable text.
	GenericErrorMessage = "Error al predecir"
)

// Error kinds, used in panel state, logs and metrics.
const (
	KindValidation  = "validation"
	KindTransport   = "transport"
	KindProtocol    = "protocol"
	KindApplication = "application"
	KindInternal    = "internal"
)

// ValidationError is raised before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportError means the call to the gateway did not complete.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the gateway answered with a body that is not JSON.
// Its message is the raw body.
type ProtocolError struct {
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string { return e.Body }

// ApplicationError is a non-2xx answer with a JSON body.
type ApplicationError struct {
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string { return e.Message }

// Message returns the text shown to the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}

// Kind classifies err into one of the Kind constants.
func Kind(err error) string {
	var (
		validationErr  *ValidationError
		transportErr   *TransportError
		protocolErr    *ProtocolError
		applicationErr *ApplicationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &protocolErr):
		return KindProtocol
	case errors.As(err, &applicationErr):
		return KindApplication
	default:
		return KindInternal
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
