package reveal_test

import (
	"sync"
	"testing"

	"github.com/aretw0/tapestry/pkg/reveal"
	"github.com/stretchr/testify/assert"
)

func TestTracker_FiresOnce(t *testing.T) {
	calls := 0
	tr := reveal.NewTracker(2, func() { calls++ })

	assert.False(t, tr.Complete(0))
	assert.False(t, tr.Complete(0), "repeated index must not count twice")
	assert.False(t, tr.Complete(5), "out of range index is ignored")
	assert.Equal(t, 1, tr.Completed())
	assert.False(t, tr.Done())

	assert.True(t, tr.Complete(1))
	assert.False(t, tr.Complete(1))
	assert.True(t, tr.Done())
	assert.Equal(t, 1, calls)
}

func TestTracker_EmptyScreen(t *testing.T) {
	calls := 0
	tr := reveal.NewTracker(0, func() { calls++ })

	assert.True(t, tr.Flush())
	assert.False(t, tr.Flush())
	assert.Equal(t, 1, calls)
}

func TestTracker_Concurrent(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	const lines = 50
	tr := reveal.NewTracker(lines, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < lines; i++ {
		for j := 0; j < 3; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tr.Complete(i)
			}(i)
		}
	}
	wg.Wait()

	assert.True(t, tr.Done())
	assert.Equal(t, 1, calls)
}
