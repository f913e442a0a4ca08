package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyLastCallRuns(t *testing.T) {
	d := New(20 * time.Millisecond)
	var first, last atomic.Int32

	d.Call(func() { first.Add(1) })
	d.Call(func() { first.Add(1) })
	d.Call(func() { last.Add(1) })

	require.Eventually(t, func() bool { return last.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestEachCallResetsQuietPeriod(t *testing.T) {
	d := New(40 * time.Millisecond)
	var count atomic.Int32

	for range 3 {
		d.Call(func() { count.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}
	// Still inside the quiet period of the last call.
	assert.Equal(t, int32(0), count.Load())

	require.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, time.Millisecond)
}

func TestStopCancelsPending(t *testing.T) {
	d := New(10 * time.Millisecond)
	var count atomic.Int32

	d.Call(func() { count.Add(1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load())

	// Calls after Stop are ignored.
	d.Call(func() { count.Add(1) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load())
}
