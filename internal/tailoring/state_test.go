package tailoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateReceived, StateNormalized, true},
		{StateReceived, StateFailed, true},
		{StateReceived, StateInvoking, false},
		{StatePlanned, StateInvoking, true},
		{StatePlanned, StateCompleted, true},
		{StateInvoking, StateValidating, true},
		{StateInvoking, StateInvoking, true},
		{StateValidating, StateInvoking, true},
		{StateValidating, StateCompleted, true},
		{StateCompleted, StateInvoking, false},
		{StateFailed, StateReceived, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestState_Terminal(t *testing.T) {
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateInvoking.Terminal())
}
