package idgen

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflake_InvalidNode(t *testing.T) {
	_, err := NewSnowflake(4096)
	assert.Error(t, err)
}

func TestSnowflake_IDsAreUniqueAndIncreasing(t *testing.T) {
	gen, err := NewSnowflake(1)
	require.NoError(t, err)

	prev := gen.NextID()
	for i := 0; i < 1000; i++ {
		id := gen.NextID()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestSnowflake_ConcurrentUse(t *testing.T) {
	gen, err := NewSnowflake(7)
	require.NoError(t, err)

	const workers, perWorker = 8, 200
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- gen.NextID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
}

func TestIssuedAt(t *testing.T) {
	gen, err := NewSnowflake(2)
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	issued := IssuedAt(gen.NextID())
	assert.True(t, issued.After(before), "issued %v should be after %v", issued, before)
}

func TestSequence(t *testing.T) {
	seq := NewSequence(100)
	assert.Equal(t, int64(100), seq.NextID())
	assert.Equal(t, int64(101), seq.NextID())
}
