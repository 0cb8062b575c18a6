package recipient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failure")

type fakeMemberSource struct {
	calls   atomic.Int64
	members []string
	err     error

	// block, when non-nil, holds every lookup until closed.
	block chan struct{}
}

func (f *fakeMemberSource) GroupMembers(_ context.Context, _ string) ([]string, error) {
	f.calls.Add(1)

	if f.block != nil {
		<-f.block
	}

	if f.err != nil {
		return nil, f.err
	}

	return f.members, nil
}

func newTestResolver(source MemberSource) *Resolver {
	logger := zerolog.Nop()

	return NewResolver(source, &logger)
}

func TestResolverCachesMembers(t *testing.T) {
	source := &fakeMemberSource{members: []string{"a", "b", "c"}}
	r := newTestResolver(source)

	first, err := r.GroupMembers(context.Background(), "group-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, first)

	second, err := r.GroupMembers(context.Background(), "group-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, int64(1), source.calls.Load(), "second lookup should hit the cache")
}

func TestResolverDoesNotCacheFailures(t *testing.T) {
	source := &fakeMemberSource{err: errUpstream}
	r := newTestResolver(source)

	_, err := r.GroupMembers(context.Background(), "group-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResolveMembers)
	assert.ErrorIs(t, err, errUpstream)

	source.err = nil
	source.members = []string{"a"}

	members, err := r.GroupMembers(context.Background(), "group-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, members)

	assert.Equal(t, int64(2), source.calls.Load(), "failure must not be cached")
}

func TestResolverCoalescesConcurrentLookups(t *testing.T) {
	source := &fakeMemberSource{
		members: []string{"a", "b"},
		block:   make(chan struct{}),
	}
	r := newTestResolver(source)

	const waiters = 5

	var wg sync.WaitGroup

	results := make([][]string, waiters)
	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.GroupMembers(context.Background(), "group-1")
		}(i)
	}

	// Give every goroutine time to reach the in-flight lookup before
	// releasing it.
	time.Sleep(50 * time.Millisecond)
	close(source.block)
	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"a", "b"}, results[i])
	}

	assert.Equal(t, int64(1), source.calls.Load(), "concurrent lookups should coalesce into one upstream call")
}

func TestResolverKeysByGroup(t *testing.T) {
	source := &fakeMemberSource{members: []string{"a"}}
	r := newTestResolver(source)

	_, err := r.GroupMembers(context.Background(), "group-1")
	require.NoError(t, err)

	_, err = r.GroupMembers(context.Background(), "group-2")
	require.NoError(t, err)

	assert.Equal(t, int64(2), source.calls.Load())
}
