package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestOnlyLastTriggerRuns(t *testing.T) {
	d := New(30 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Value

	for _, term := range []string{"a", "an", "ana"} {
		term := term
		d.Trigger(func() {
			calls.Add(1)
			last.Store(term)
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "ana", last.Load())
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCancelDropsPendingCall(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Pending())
	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
