package scoring

import (
	"errors"
	"fmt"
)

// TransportError indicates the request never produced an HTTP response:
// the service is unreachable, the connection broke or the call timed out.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("scoring service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError indicates the service answered with a non-2xx status.
// Message holds the "message" field of the JSON body when one was sent.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("scoring service returned HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("scoring service returned HTTP %d", e.StatusCode)
}

// InvalidResponseError indicates a 2xx reply whose body is not a valid
// scoring response.
type InvalidResponseError struct {
	Body []byte
	Err  error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid scoring response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// InvalidRequestError indicates the payload was rejected before sending.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid scoring request: %v", e.Err)
}

func (e *InvalidRequestError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport-level failure, meaning
// either no response at all or an error status without a message.
func IsTransport(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var se *ServiceError
	return errors.As(err, &se) && se.Message == ""
}

// ServiceMessage returns the message reported by the service in an error
// response, if any.
func ServiceMessage(err error) (string, bool) {
	var se *ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}

// StatusCode returns the HTTP status of a ServiceError, or 0.
func StatusCode(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
