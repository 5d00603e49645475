package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 3, 7, 64} {
		n := 101
		counts := make([]int32, n)
		For(n, workers, func(low, high, jump int) {
			for i := low; i < high; i += jump {
				atomic.AddInt32(&counts[i], 1)
			}
		})
		for i := range counts {
			assert.Equal(t, int32(1), counts[i], "workers = %d, i = %d", workers, i)
		}
	}
}

func TestEachEmpty(t *testing.T) {
	called := false
	Each(0, 4, func(i int) { called = true })
	assert.False(t, called)
}

func TestForNegativePanics(t *testing.T) {
	assert.Panics(t, func() { For(-1, 1, func(low, high, jump int) {}) })
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, 3, Workers(3))
	assert.True(t, Workers(0) >= 1)
}
