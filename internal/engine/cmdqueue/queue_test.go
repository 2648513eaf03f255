package cmdqueue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushPop(t *testing.T) {
	q := New[int](4)

	assert.True(t, q.Push(1))
	assert.True(t, q.Push(2))
	assert.Equal(t, 2, q.Len())

	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestPushFailsWhenFull(t *testing.T) {
	q := New[int](2)
	assert.True(t, q.Push(1))
	assert.True(t, q.Push(2))
	assert.False(t, q.Push(3))
	assert.Equal(t, 2, q.Len())
}

func TestFIFOOrderAfterWrap(t *testing.T) {
	q := New[int](3)
	for i := 0; i < 10; i++ {
		assert.True(t, q.Push(i))
		v, ok := q.Pop()
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	q := New[int](8)
	const n = 100000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for !q.Push(i) {
				// bounded queue; spin until the consumer drains.
			}
		}
	}()

	received := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for len(received) < n {
			if v, ok := q.Pop(); ok {
				received = append(received, v)
			}
		}
	}()

	wg.Wait()
	for i := 0; i < n; i++ {
		assert.Equal(t, i, received[i])
	}
}
