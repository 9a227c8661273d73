package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvokeError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"timeout", timeoutError("slow", nil), ErrTimeout},
		{"unavailable", unavailableError("down", nil), ErrServiceUnavailable},
		{"invalid", invalidResponseError("empty", nil), ErrInvalidResponse},
	}

	all := []error{ErrTimeout, ErrServiceUnavailable, ErrInvalidResponse}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("call failed: %w", tt.err)
			for _, sentinel := range all {
				assert.Equal(t, sentinel == tt.sentinel, errors.Is(wrapped, sentinel))
			}

			var invokeErr *InvokeError
			assert.True(t, errors.As(wrapped, &invokeErr))
		})
	}
}

func TestInvokeError_UnwrapsCause(t *testing.T) {
	err := timeoutError("deadline", context.DeadlineExceeded)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Contains(t, err.Error(), "timeout: deadline")
}
