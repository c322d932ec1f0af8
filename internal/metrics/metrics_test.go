package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTransitionObserve(t *testing.T) {
	before := testutil.ToFloat64(transitions.WithLabelValues("Deposit", OutcomeApplied))

	TransitionObserve("Deposit", OutcomeApplied, 20*time.Millisecond)
	TransitionObserve("Deposit", OutcomeApplied, 30*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(transitions.WithLabelValues("Deposit", OutcomeApplied)))
}

func TestMessageInc(t *testing.T) {
	before := testutil.ToFloat64(messages.WithLabelValues(MessageDeadLettered))
	MessageInc(MessageDeadLettered)
	assert.Equal(t, before+1, testutil.ToFloat64(messages.WithLabelValues(MessageDeadLettered)))
}

func TestListenerBlockSet(t *testing.T) {
	ListenerBlockSet(1234)
	assert.Equal(t, float64(1234), testutil.ToFloat64(listenerBlock))
}
