package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountingAccumulates(t *testing.T) {
	c := NewCounting()
	c.Inc("dispatch.calls")
	c.Inc("dispatch.calls")
	c.IncBy("dispatch.calls", 3)

	require.Equal(t, int64(5), c.Snapshot()["dispatch.calls"])
}

func TestCountingIsSafeForConcurrentIncrements(t *testing.T) {
	c := NewCounting()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc("concurrent")
		}()
	}
	wg.Wait()
	require.Equal(t, int64(100), c.Snapshot()["concurrent"])
}

func TestNoOpDoesNothing(t *testing.T) {
	require.NotPanics(t, func() {
		var n NoOp
		n.Inc("x")
		n.IncBy("y", 5)
	})
}
