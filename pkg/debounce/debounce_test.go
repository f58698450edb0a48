package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleCoalescesBurst(t *testing.T) {
	d := New(30 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Schedule("note-1", func() {
			calls.Add(1)
			last.Store(v)
		})
	}

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending("note-1"))
}

func TestScheduleIsolatesKeys(t *testing.T) {
	d := New(10 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule("note-1", func() { calls.Add(1) })
	d.Schedule("note-2", func() { calls.Add(1) })

	assert.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestCancelDropsPendingCall(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule("note-1", func() { calls.Add(1) })
	assert.True(t, d.Cancel("note-1"))
	assert.False(t, d.Cancel("note-1"))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCancelAll(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule("note-1", func() { calls.Add(1) })
	d.Schedule("note-2", func() { calls.Add(1) })
	d.CancelAll()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending("note-1"))
	assert.False(t, d.Pending("note-2"))
}
