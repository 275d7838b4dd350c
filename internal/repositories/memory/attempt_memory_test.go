package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimu-cbc/quiz-service/internal/engine"
	"github.com/elimu-cbc/quiz-service/internal/models"
)

func TestAttemptMemoryStore_SaveAndGet(t *testing.T) {
	store := NewAttemptMemoryStore()
	ctx := context.Background()

	attempt := &models.QuizAttempt{ID: "a1", QuizID: "q1", StudentID: "s1"}
	require.NoError(t, store.Save(ctx, attempt))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, attempt, got)
	assert.Equal(t, 1, store.Len())
}

func TestAttemptMemoryStore_GetMissing(t *testing.T) {
	store := NewAttemptMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, engine.ErrAttemptNotFound)
}

func TestAttemptMemoryStore_Remove(t *testing.T) {
	store := NewAttemptMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.QuizAttempt{ID: "a1"}))
	require.NoError(t, store.Remove(ctx, "a1"))

	_, err := store.Get(ctx, "a1")
	assert.ErrorIs(t, err, engine.ErrAttemptNotFound)
	assert.Zero(t, store.Len())

	// Removing an absent attempt is not an error.
	assert.NoError(t, store.Remove(ctx, "a1"))
}

func TestAttemptMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewAttemptMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("attempt-%d", n)
			_ = store.Save(ctx, &models.QuizAttempt{ID: id})
			_, _ = store.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}
