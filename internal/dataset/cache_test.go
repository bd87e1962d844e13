package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoadsOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCache(func(context.Context) (*Table, error) {
		calls.Add(1)
		<-release
		return NewBuilder().Add(map[Field]float64{Year: 2020}, nil).Table(), nil
	}, nil)

	const n = 16
	var wg sync.WaitGroup
	tables := make([]*Table, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := c.Get(context.Background())
			assert.NoError(t, err)
			tables[i] = tbl
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Loads())
	for _, tbl := range tables {
		assert.Same(t, tables[0], tbl)
	}
}

func TestCacheClearReloads(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(context.Context) (*Table, error) {
		calls.Add(1)
		return NewBuilder().Table(), nil
	}, nil)

	first, err := c.Get(context.Background())
	require.NoError(t, err)
	again, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, int32(1), calls.Load())

	c.Clear()
	reloaded, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, reloaded)
	assert.NotEqual(t, first.ID(), reloaded.ID())
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheClearDuringLoadDropsResult(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	c := NewCache(func(context.Context) (*Table, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return NewBuilder().Table(), nil
	}, nil)

	done := make(chan *Table)
	go func() {
		tbl, err := c.Get(context.Background())
		assert.NoError(t, err)
		done <- tbl
	}()
	<-started
	c.Clear()
	close(release)
	stale := <-done
	assert.NotNil(t, stale)
	assert.Equal(t, 0, c.Loads())

	fresh, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, c.Loads())
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	c := NewCache(func(context.Context) (*Table, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return NewBuilder().Table(), nil
	}, nil)

	_, err := c.Get(context.Background())
	require.ErrorIs(t, err, boom)
	tbl, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tbl)
	assert.Equal(t, 1, c.Loads())
}

func TestFileLoaderPropagatesUnavailable(t *testing.T) {
	c := NewCache(FileLoader("/definitely/not/here.csv", DefaultOptions()), nil)
	_, err := c.Get(context.Background())
	require.ErrorIs(t, err, ErrDataUnavailable)
}
