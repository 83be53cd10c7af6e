package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess-number/internal/game"
	"github.com/robalobadob/guess-number/internal/secret"
)

var base = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := game.NewSession(game.DefaultRules(), secret.Fixed(3))

	require.NoError(t, st.Save(ctx, s, base.Add(time.Hour)))
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, s.ID), ErrNotFound)
	assert.Zero(t, st.Len())
}

func TestMemoryStore_RejectsNil(t *testing.T) {
	assert.Error(t, NewMemoryStore().Save(context.Background(), nil, base))
}

func TestMemoryStore_Expired(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	short := game.NewSession(game.DefaultRules(), secret.Fixed(1))
	long := game.NewSession(game.DefaultRules(), secret.Fixed(2))
	require.NoError(t, st.Save(ctx, short, base.Add(time.Minute)))
	require.NoError(t, st.Save(ctx, long, base.Add(time.Hour)))

	ids, err := st.Expired(ctx, base)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = st.Expired(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{short.ID}, ids)

	ids, err = st.Expired(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{short.ID, long.ID}, ids)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := game.NewSession(game.DefaultRules(), secret.Seeded(1))
			assert.NoError(t, st.Save(ctx, s, base.Add(time.Hour)))
			_, err := st.Get(ctx, s.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, st.Len())
}
