package cache

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageturn/internal/domain"
)

func key(page int) domain.RenderKey {
	return domain.RenderKey{Page: page, ZoomBucket: 20, Rotation: domain.Rotate0}
}

func bitmap() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

func countingRender(calls *atomic.Int64) RenderFunc {
	return func(domain.RenderKey) (*image.RGBA, error) {
		calls.Add(1)
		return bitmap(), nil
	}
}

func TestGetOrRenderCachesResult(t *testing.T) {
	var calls atomic.Int64
	c, err := New(4, countingRender(&calls))
	require.NoError(t, err)

	bm, err := c.GetOrRender(key(0))
	require.NoError(t, err)
	require.NotNil(t, bm)

	again, err := c.GetOrRender(key(0))
	require.NoError(t, err)
	assert.Same(t, bm, again)
	assert.Equal(t, int64(1), calls.Load())
}

func TestEvictionIsLRU(t *testing.T) {
	var calls atomic.Int64
	c, err := New(3, countingRender(&calls))
	require.NoError(t, err)

	for p := 0; p < 3; p++ {
		_, err := c.GetOrRender(key(p))
		require.NoError(t, err)
	}

	// Touch page 0 so page 1 becomes least recently used.
	_, ok := c.Get(key(0))
	require.True(t, ok)

	_, err = c.GetOrRender(key(3))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	_, ok = c.Get(key(1))
	assert.False(t, ok, "page 1 should have been evicted")
	_, ok = c.Get(key(0))
	assert.True(t, ok, "touched page 0 should survive")
}

func TestConcurrentRequestsShareOneRender(t *testing.T) {
	var calls atomic.Int64
	started := make(chan struct{})
	c, err := New(4, func(domain.RenderKey) (*image.RGBA, error) {
		calls.Add(1)
		<-started
		return bitmap(), nil
	})
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := c.GetOrRender(key(7))
			assert.NoError(t, err)
		}()
	}

	// Let every goroutine pile onto the same flight before it completes.
	time.Sleep(50 * time.Millisecond)
	close(started)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestRenderErrorStoresNothing(t *testing.T) {
	boom := errors.New("decoder exploded")
	c, err := New(4, func(domain.RenderKey) (*image.RGBA, error) {
		return nil, boom
	})
	require.NoError(t, err)

	_, err = c.GetOrRender(key(2))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestInvalidateByPredicate(t *testing.T) {
	var calls atomic.Int64
	c, err := New(8, countingRender(&calls))
	require.NoError(t, err)

	for p := 0; p < 4; p++ {
		_, err := c.GetOrRender(key(p))
		require.NoError(t, err)
	}

	removed := c.Invalidate(func(k domain.RenderKey) bool { return k.Page%2 == 0 })
	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(key(1))
	assert.True(t, ok)
	_, ok = c.Get(key(2))
	assert.False(t, ok)
}

func TestInvalidateDiscardsInflightResult(t *testing.T) {
	block := make(chan struct{})
	c, err := New(4, func(domain.RenderKey) (*image.RGBA, error) {
		<-block
		return bitmap(), nil
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.GetOrRender(key(5))
		assert.NoError(t, err)
	}()

	time.Sleep(20 * time.Millisecond)
	c.Invalidate(func(domain.RenderKey) bool { return true })
	close(block)
	<-done

	// The render completed after invalidation: result discarded.
	assert.Equal(t, 0, c.Len())
}

func TestPrefetchIsSilent(t *testing.T) {
	var calls atomic.Int64
	c, err := New(4, func(domain.RenderKey) (*image.RGBA, error) {
		calls.Add(1)
		return nil, errors.New("flaky")
	})
	require.NoError(t, err)

	c.Prefetch(key(1), key(2))

	require.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, c.Len())
}

func TestGenerationAdvancesOnInvalidate(t *testing.T) {
	c, err := New(4, countingRender(new(atomic.Int64)))
	require.NoError(t, err)

	g := c.Generation()
	c.Invalidate(func(domain.RenderKey) bool { return false })
	assert.Equal(t, g+1, c.Generation())
}
