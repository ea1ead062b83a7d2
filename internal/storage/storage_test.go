package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
	"github.com/eugenenazirov/soil-calculator/internal/catalog"
	"github.com/eugenenazirov/soil-calculator/internal/selection"
)

func emptyState(t *testing.T) selection.State {
	t.Helper()

	state, err := selection.NewState(calculator.CubicFeet, 1)
	require.NoError(t, err)
	return state
}

func classicLarge(t *testing.T) (catalog.Bed, calculator.VolumeResult) {
	t.Helper()

	c, err := catalog.New(calculator.New())
	require.NoError(t, err)
	bed, err := c.ByID("classic-large")
	require.NoError(t, err)
	volume, err := bed.Volume(calculator.New())
	require.NoError(t, err)
	return bed, volume
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStorage(WithClock(func() time.Time { return now }))

	created, err := store.Create(emptyState(t))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, now, created.CreatedAt)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 1, store.Len())
}

func TestGetUnknownSession(t *testing.T) {
	t.Parallel()

	_, err := NewMemoryStorage().Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateAppliesMutation(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStorage(WithClock(func() time.Time { return now }))
	bed, volume := classicLarge(t)

	created, err := store.Create(emptyState(t))
	require.NoError(t, err)

	now = now.Add(time.Minute)
	updated, err := store.Update(created.ID, func(s selection.State) (selection.State, error) {
		next, _, err := s.Add(bed, volume)
		return next, err
	})
	require.NoError(t, err)
	assert.Len(t, updated.State.Entries, 1)
	assert.Equal(t, now, updated.UpdatedAt)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Len(t, got.State.Entries, 1)
}

func TestUpdateFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	bed, volume := classicLarge(t)

	created, err := store.Create(emptyState(t))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Update(created.ID, func(s selection.State) (selection.State, error) {
		next, _, addErr := s.Add(bed, volume)
		require.NoError(t, addErr)
		return next, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.State.Entries)
}

func TestReturnedSessionsAreCopies(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	bed, volume := classicLarge(t)
	state, _, err := emptyState(t).Add(bed, volume)
	require.NoError(t, err)

	created, err := store.Create(state)
	require.NoError(t, err)
	created.State.Entries[0].FillFactor = 0.25

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.State.Entries[0].FillFactor)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	created, err := store.Create(emptyState(t))
	require.NoError(t, err)

	require.NoError(t, store.Delete(created.ID))
	assert.ErrorIs(t, store.Delete(created.ID), ErrSessionNotFound)
	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, store.Len())
}

func TestMaxSessions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage(WithMaxSessions(2))
	for i := 0; i < 2; i++ {
		_, err := store.Create(emptyState(t))
		require.NoError(t, err)
	}

	_, err := store.Create(emptyState(t))
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	store := NewMemoryStorage()
	bed, volume := classicLarge(t)

	created, err := store.Create(emptyState(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			_, err := store.Update(created.ID, func(s selection.State) (selection.State, error) {
				next, _, err := s.Add(bed, volume)
				return next, err
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()

		go func() {
			defer wg.Done()
			if _, err := store.Get(created.ID); err != nil {
				t.Errorf("Get failed: %v", err)
			}
		}()
	}

	wg.Wait()

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Len(t, got.State.Entries, 32)
}
