package llm

import (
	"errors"
	"fmt"
)

// Kind classifies invoker failures
type Kind string

// Invoker failure kinds
const (
	KindTimeout            Kind = "timeout"
	KindServiceUnavailable Kind = "service_unavailable"
	KindInvalidResponse    Kind = "invalid_response"
)

// Sentinels matched by errors.Is against an *InvokeError of the same kind
var (
	ErrTimeout            = errors.New("model invocation timed out")
	ErrServiceUnavailable = errors.New("model service unavailable")
	ErrInvalidResponse    = errors.New("invalid model response")
)

// InvokeError represents a failed model invocation
type InvokeError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *InvokeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *InvokeError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel for the error's kind
func (e *InvokeError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrServiceUnavailable:
		return e.Kind == KindServiceUnavailable
	case ErrInvalidResponse:
		return e.Kind == KindInvalidResponse
	}
	return false
}

func timeoutError(message string, cause error) error {
	return &InvokeError{Kind: KindTimeout, Message: message, Cause: cause}
}

func unavailableError(message string, cause error) error {
	return &InvokeError{Kind: KindServiceUnavailable, Message: message, Cause: cause}
}

func invalidResponseError(message string, cause error) error {
	return &InvokeError{Kind: KindInvalidResponse, Message: message, Cause: cause}
}
