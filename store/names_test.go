/* names_test.go
 * Contains unit tests for the unique-name allocator loop.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contest-platform/models"
)

// takenSet builds a taken-check over a fixed set of occupied names.
func takenSet(names ...string) func(context.Context, string) (bool, error) {
	occupied := make(map[string]bool, len(names))
	for _, n := range names {
		occupied[n] = true
	}
	return func(_ context.Context, candidate string) (bool, error) {
		return occupied[candidate], nil
	}
}

func TestAllocateName_FreeBaseReturnedUnchanged(t *testing.T) {
	name, err := allocateName(context.Background(), "Alice", 50, takenSet())
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
}

func TestAllocateName_FirstCollisionGetsSuffixOne(t *testing.T) {
	name, err := allocateName(context.Background(), "Team Phoenix", 50, takenSet("Team Phoenix"))
	require.NoError(t, err)
	assert.Equal(t, "Team Phoenix1", name)
}

func TestAllocateName_SmallestUnusedSuffixWins(t *testing.T) {
	// Alice, Alice1..Alice4 occupied; Alice5 is the first free slot.
	name, err := allocateName(context.Background(), "Alice", 50,
		takenSet("Alice", "Alice1", "Alice2", "Alice3", "Alice4"))
	require.NoError(t, err)
	assert.Equal(t, "Alice5", name)
}

func TestAllocateName_FreedLowerSuffixNotBackfilled(t *testing.T) {
	// Alice2 was freed by a rename but Alice3 onwards stay occupied. The
	// loop still stops at the first free candidate it reaches.
	name, err := allocateName(context.Background(), "Alice", 50,
		takenSet("Alice", "Alice1", "Alice3"))
	require.NoError(t, err)
	assert.Equal(t, "Alice2", name)
}

func TestAllocateName_TrimsAndNormalizes(t *testing.T) {
	name, err := allocateName(context.Background(), "  Alice  ", 50, takenSet())
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
}

func TestAllocateName_EmptyBaseRejected(t *testing.T) {
	_, err := allocateName(context.Background(), "   ", 50, takenSet())
	assert.ErrorIs(t, err, models.ErrValidationFailed)
}

func TestAllocateName_ExhaustsAfterCap(t *testing.T) {
	alwaysTaken := func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}
	_, err := allocateName(context.Background(), "Alice", 3, alwaysTaken)
	assert.ErrorIs(t, err, models.ErrAllocationExhausted)
}

func TestAllocateName_CapBoundsAttemptCount(t *testing.T) {
	attempts := 0
	counting := func(_ context.Context, _ string) (bool, error) {
		attempts++
		return true, nil
	}
	_, err := allocateName(context.Background(), "Alice", 5, counting)
	require.ErrorIs(t, err, models.ErrAllocationExhausted)
	assert.Equal(t, 5, attempts)
}

func TestAllocateName_LookupFailureIsStorageUnavailable(t *testing.T) {
	failing := func(_ context.Context, _ string) (bool, error) {
		return false, errors.New("connection reset")
	}
	_, err := allocateName(context.Background(), "Alice", 50, failing)
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestMockStore_AllocateNameAcrossCollections(t *testing.T) {
	m := NewMockStore()
	m.SeedUser(models.User{UID: "u1", Email: "a@x.com", Name: "Alice", Roles: []models.Role{models.RoleGuest}})
	m.SeedProject(models.Project{ID: "p1", Name: "Alice", Term: "2024-2", LeaderName: "Alice", Phase: models.PhaseRegistered})

	// The same base collides independently per collection.
	userName, err := m.AllocateName(context.Background(), UsersCollection, "name", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice1", userName)

	projectName, err := m.AllocateName(context.Background(), ProjectsCollection, "name", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice1", projectName)

	// A fresh base passes through untouched.
	fresh, err := m.AllocateName(context.Background(), UsersCollection, "name", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", fresh)
}

func TestMockStore_SuffixSequenceFillsInOrder(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		name, err := m.AllocateName(ctx, ProjectsCollection, "name", "Rocket")
		require.NoError(t, err)
		m.SeedProject(models.Project{
			ID:         fmt.Sprintf("p%d", i),
			Name:       name,
			Term:       "2024-2",
			LeaderName: "Alice",
			Phase:      models.PhaseRegistered,
		})
	}

	assert.Contains(t, m.Projects, "Rocket")
	assert.Contains(t, m.Projects, "Rocket1")
	assert.Contains(t, m.Projects, "Rocket2")
	assert.Contains(t, m.Projects, "Rocket3")
}
