/* audit_worker_test.go
 * Contains unit tests for the linkage audit over the in-memory store.
 */

package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contest-platform/models"
	"contest-platform/store"
)

func TestAudit_ConsistentStateReportsZero(t *testing.T) {
	st := store.NewMockStore()
	st.SeedProject(models.Project{ID: "p1", Name: "Rocket", Term: "2024-2", LeaderName: "Alice", Phase: models.PhaseRegistered})
	st.SeedUser(models.User{
		UID: "ua", Email: "alice@example.com", Name: "Alice",
		Roles: []models.Role{models.RoleTeamLeader}, Projects: []string{"Rocket"},
	})

	a := NewLinkageAuditor(st, 0)
	dangling, err := a.audit(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dangling)
}

func TestAudit_CountsDanglingReferences(t *testing.T) {
	st := store.NewMockStore()
	st.SeedProject(models.Project{ID: "p1", Name: "Rocket", Term: "2024-2", LeaderName: "Alice", Phase: models.PhaseRegistered})
	st.SeedUser(models.User{
		UID: "ua", Email: "alice@example.com", Name: "Alice",
		Roles: []models.Role{models.RoleTeamLeader}, Projects: []string{"Rocket", "Deleted One"},
	})
	st.SeedUser(models.User{
		UID: "ub", Email: "bob@example.com", Name: "Bob",
		Roles: []models.Role{models.RoleGuest}, Projects: []string{"Ghost"},
	})

	a := NewLinkageAuditor(st, 0)
	dangling, err := a.audit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, dangling)
}

func TestAudit_StoreFailurePropagates(t *testing.T) {
	st := store.NewMockStore()
	st.ListProjectsError = errors.New("cursor timeout")

	a := NewLinkageAuditor(st, 0)
	_, err := a.audit(context.Background())
	assert.Error(t, err)
}
