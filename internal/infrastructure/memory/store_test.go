package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Replace(context.Background(), application.State{
		Clinics: []domain.Clinic{{ID: "c1", Name: "Alpha", GalleryImages: []string{"g1"}}},
		Users:   []domain.User{{ID: "u1", Email: "a@example.com", FavoriteClinicIDs: []string{}}},
	}))
	return s
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Update(ctx, func(st *application.State) error {
		st.Users[0].Role = domain.RoleClinicOwner
		st.Clinics = nil
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(st application.State) error {
		assert.Len(t, st.Clinics, 1)
		assert.Empty(t, st.Users[0].Role)
		return nil
	}))
}

func TestViewReturnsPrivateCopy(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	require.NoError(t, s.View(ctx, func(st application.State) error {
		st.Clinics[0].Name = "mutated"
		st.Clinics[0].GalleryImages[0] = "mutated"
		return nil
	}))

	require.NoError(t, s.View(ctx, func(st application.State) error {
		assert.Equal(t, "Alpha", st.Clinics[0].Name)
		assert.Equal(t, "g1", st.Clinics[0].GalleryImages[0])
		return nil
	}))
}

func TestReplaceCopiesInput(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	input := application.State{Clinics: []domain.Clinic{{ID: "c1", Name: "Alpha"}}}
	require.NoError(t, s.Replace(ctx, input))

	input.Clinics[0].Name = "changed"

	require.NoError(t, s.View(ctx, func(st application.State) error {
		assert.Equal(t, "Alpha", st.Clinics[0].Name)
		return nil
	}))
}

func TestUpdateSerializesWriters(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, func(st *application.State) error {
				st.Users[0].FavoriteClinicIDs = append(st.Users[0].FavoriteClinicIDs, "c")
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, s.View(ctx, func(st application.State) error {
		assert.Len(t, st.Users[0].FavoriteClinicIDs, 50)
		return nil
	}))
}

func TestCancelledContextDoesNotMutate(t *testing.T) {
	s := seededStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Update(ctx, func(*application.State) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
