package shardmap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_Basic(t *testing.T) {
	m := New[int]()

	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Set("a", 1)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	assert.False(t, m.SetIfAbsent("a", 2))
	assert.True(t, m.SetIfAbsent("b", 2))
	assert.Equal(t, 2, m.Len())

	removed, ok := m.Delete("a")
	assert.True(t, ok)
	assert.Equal(t, 1, removed)
	assert.Equal(t, map[string]int{"b": 2}, m.Snapshot())
}

func TestMap_DeleteIf(t *testing.T) {
	m := New[string]()
	m.Set("trip-1", "loop-a")

	assert.False(t, m.DeleteIf("trip-1", func(v string) bool { return v == "loop-b" }))
	assert.True(t, m.DeleteIf("trip-1", func(v string) bool { return v == "loop-a" }))
	assert.Equal(t, 0, m.Len())
}

func TestMap_Compute(t *testing.T) {
	m := New[int]()

	v, stored := m.Compute("x", func(cur int, exists bool) (int, bool) {
		assert.False(t, exists)
		return cur + 5, true
	})
	assert.True(t, stored)
	assert.Equal(t, 5, v)

	v, stored = m.Compute("x", func(cur int, exists bool) (int, bool) { return 0, false })
	assert.False(t, stored)
	assert.Equal(t, 5, v)
}

func TestMap_ConcurrentCompute(t *testing.T) {
	m := NewWithShards[int](4)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("driver-%d", i%5)
			for j := 0; j < 100; j++ {
				m.Compute(key, func(cur int, _ bool) (int, bool) { return cur + 1, true })
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, v := range m.Snapshot() {
		total += v
	}
	assert.Equal(t, 5000, total)
	assert.Equal(t, 5, m.Len())
}
