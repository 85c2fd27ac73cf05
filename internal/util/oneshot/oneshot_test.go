package oneshot_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imkit/internal/util/oneshot"
)

func TestSlot_FirstResolveWins(t *testing.T) {
	var dup []int
	s := oneshot.New[string](oneshot.Hooks{Duplicate: func(n int) { dup = append(dup, n) }})

	require.True(t, s.Resolve("first"))
	require.False(t, s.Resolve("second"))
	require.False(t, s.Resolve("third"))

	got, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, []int{2, 3}, dup)
	assert.True(t, s.Resolved())
}

func TestSlot_ResolveFromOtherGoroutine(t *testing.T) {
	s := oneshot.New[int](oneshot.Hooks{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Resolve(42)
	}()
	got, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSlot_WaitHonoursContext(t *testing.T) {
	var (
		mu   sync.Mutex
		late bool
	)
	s := oneshot.New[int](oneshot.Hooks{Late: func() {
		mu.Lock()
		late = true
		mu.Unlock()
	}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.True(t, s.Resolve(7))
	mu.Lock()
	defer mu.Unlock()
	assert.True(t, late)
}

func TestSlot_StoredValueWinsOverDoneContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Both select cases are ready; repeat so a random pick of ctx.Done()
	// would show up.
	for i := 0; i < 200; i++ {
		late := false
		s := oneshot.New[int](oneshot.Hooks{Late: func() { late = true }})
		require.True(t, s.Resolve(i))

		got, err := s.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, got)
		assert.False(t, late)
	}
}
