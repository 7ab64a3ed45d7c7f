/* projects_test.go
 * Contains unit tests for project creation, the member-list parser and
 * the atomic project/profile batch.
 */

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contest-platform/models"
	"contest-platform/store"
)

func seedLeader(st *store.MockStore) *models.Session {
	st.SeedUser(models.User{
		UID:      "leader-1",
		Email:    "alice@example.com",
		Name:     "Alice",
		Roles:    []models.Role{models.RoleTeamLeader},
		Projects: []string{},
	})
	return &models.Session{UID: "leader-1", Name: "Alice", Roles: []models.Role{models.RoleTeamLeader}}
}

func validProjectInput() ProjectInput {
	return ProjectInput{
		Name:       "Rocket",
		Term:       "2024-2",
		TeamName:   "Launchpad",
		LeaderName: "Alice",
	}
}

func TestParseMembers_TrimsAndDropsEmpties(t *testing.T) {
	assert.Equal(t, []string{"Ann", "Bob", "Cid"}, ParseMembers("Ann, Bob,, Cid "))
}

func TestParseMembers_QuotesProtectCommas(t *testing.T) {
	assert.Equal(t, []string{"Ann, Jr", "Bob"}, ParseMembers(`"Ann, Jr", Bob`))
}

func TestParseMembers_EmptyInput(t *testing.T) {
	assert.Empty(t, ParseMembers(""))
	assert.Empty(t, ParseMembers("  ,  , "))
}

func TestCreateProject_RequiresSession(t *testing.T) {
	svc := NewProjectService(store.NewMockStore())

	_, err := svc.CreateProject(context.Background(), nil, validProjectInput())
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestCreateProject_ValidationRules(t *testing.T) {
	st := store.NewMockStore()
	session := seedLeader(st)
	svc := NewProjectService(st)

	cases := []struct {
		label  string
		mutate func(*ProjectInput)
	}{
		{"short project name", func(in *ProjectInput) { in.Name = "ab" }},
		{"short team name", func(in *ProjectInput) { in.TeamName = "x" }},
		{"empty leader", func(in *ProjectInput) { in.LeaderName = " " }},
		{"missing term", func(in *ProjectInput) { in.Term = "" }},
	}
	for _, tc := range cases {
		in := validProjectInput()
		tc.mutate(&in)
		_, err := svc.CreateProject(context.Background(), session, in)
		assert.ErrorIs(t, err, models.ErrValidationFailed, tc.label)
	}
}

func TestCreateProject_SuccessLinksOwner(t *testing.T) {
	st := store.NewMockStore()
	session := seedLeader(st)
	svc := NewProjectService(st)

	project, err := svc.CreateProject(context.Background(), session, validProjectInput())
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Rocket", project.Name)
	assert.Equal(t, models.PhaseRegistered, project.Phase)

	owner, err := st.GetUser(context.Background(), session.UID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rocket"}, owner.Projects)
}

func TestCreateProject_TakenNameGetsSuffix(t *testing.T) {
	st := store.NewMockStore()
	session := seedLeader(st)
	st.SeedProject(models.Project{ID: "p0", Name: "Team Phoenix", Term: "2024-1", LeaderName: "Alice", Phase: models.PhaseRegistered})
	svc := NewProjectService(st)

	in := validProjectInput()
	in.Name = "Team Phoenix"
	project, err := svc.CreateProject(context.Background(), session, in)
	require.NoError(t, err)
	assert.Equal(t, "Team Phoenix1", project.Name)
}

func TestCreateProject_UnknownMemberRejected(t *testing.T) {
	st := store.NewMockStore()
	session := seedLeader(st)
	svc := NewProjectService(st)

	in := validProjectInput()
	in.Members = "Alice, Nobody"
	_, err := svc.CreateProject(context.Background(), session, in)
	assert.ErrorIs(t, err, models.ErrValidationFailed)
	assert.Empty(t, st.Projects)
}

func TestCreateProject_BatchFailureLeavesNothingBehind(t *testing.T) {
	st := store.NewMockStore()
	session := seedLeader(st)
	st.CreateProjectError = errors.New("transaction aborted")
	svc := NewProjectService(st)

	_, err := svc.CreateProject(context.Background(), session, validProjectInput())
	require.Error(t, err)

	assert.Empty(t, st.Projects)
	owner, err := st.GetUser(context.Background(), session.UID)
	require.NoError(t, err)
	assert.Empty(t, owner.Projects)
}

func TestCreateProject_RelinkIsIdempotent(t *testing.T) {
	st := store.NewMockStore()
	session := seedLeader(st)

	p := models.Project{ID: "p1", Name: "Rocket", Term: "2024-2", LeaderName: "Alice", Phase: models.PhaseRegistered}
	require.NoError(t, st.CreateProjectForUser(context.Background(), session.UID, p))
	require.NoError(t, st.CreateProjectForUser(context.Background(), session.UID, p))

	owner, err := st.GetUser(context.Background(), session.UID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rocket"}, owner.Projects)
}
