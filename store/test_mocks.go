/* test_mocks.go
 * Contains an in-memory MockStore implementing Interface, used by the
 * service and worker tests.
 */

package store

import (
	"context"
	"fmt"

	"contest-platform/models"
)

// MockStore implements Interface over plain maps.
type MockStore struct {
	Users    map[string]models.User    // keyed by uid
	Projects map[string]models.Project // keyed by display name
	Contests map[string]models.Contest // keyed by id

	MaxNameAttempts int

	// Error injection for testing failure paths.
	AllocateNameError      error
	CreateUserProfileError error
	UpdateUserProfileError error
	ListUsersError         error
	CreateProjectError     error
	ListProjectsError      error
	ListContestsError      error
	CreateContestError     error
}

// NewMockStore creates an empty MockStore with default values.
func NewMockStore() *MockStore {
	return &MockStore{
		Users:           make(map[string]models.User),
		Projects:        make(map[string]models.Project),
		Contests:        make(map[string]models.Contest),
		MaxNameAttempts: DefaultMaxNameAttempts,
	}
}

// SeedUser inserts a user directly, bypassing allocation.
func (m *MockStore) SeedUser(u models.User) {
	m.Users[u.UID] = u
}

// SeedProject inserts a project directly, bypassing allocation.
func (m *MockStore) SeedProject(p models.Project) {
	m.Projects[p.Name] = p
}

func (m *MockStore) nameTaken(collection, field, candidate string) (bool, error) {
	if field != "name" {
		return false, fmt.Errorf("mock store only indexes the name field, got %q", field)
	}
	switch collection {
	case UsersCollection:
		for _, u := range m.Users {
			if u.Name == candidate {
				return true, nil
			}
		}
	case ProjectsCollection:
		_, ok := m.Projects[candidate]
		return ok, nil
	default:
		return false, fmt.Errorf("unknown collection %q", collection)
	}
	return false, nil
}

// AllocateName mirrors Store.AllocateName over the in-memory maps by
// reusing the same suffix-search loop.
func (m *MockStore) AllocateName(ctx context.Context, collection, field, base string) (string, error) {
	if m.AllocateNameError != nil {
		return "", m.AllocateNameError
	}
	return allocateName(ctx, base, m.MaxNameAttempts, func(_ context.Context, candidate string) (bool, error) {
		return m.nameTaken(collection, field, candidate)
	})
}

func (m *MockStore) UserNameExists(ctx context.Context, name string) (bool, error) {
	return m.nameTaken(UsersCollection, "name", name)
}

func (m *MockStore) GetUser(ctx context.Context, uid string) (models.User, error) {
	u, ok := m.Users[uid]
	if !ok {
		return models.User{}, fmt.Errorf("%w: user %s", models.ErrNotFound, uid)
	}
	return u, nil
}

func (m *MockStore) GetUserByName(ctx context.Context, name string) (models.User, error) {
	for _, u := range m.Users {
		if u.Name == name {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: user %q", models.ErrNotFound, name)
}

func (m *MockStore) CreateUserProfile(ctx context.Context, u models.User) error {
	if m.CreateUserProfileError != nil {
		return m.CreateUserProfileError
	}
	if err := u.Validate(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}
	m.Users[u.UID] = u
	return nil
}

func (m *MockStore) UpdateUserProfile(ctx context.Context, uid string, upd models.UserProfileUpdate) error {
	if m.UpdateUserProfileError != nil {
		return m.UpdateUserProfileError
	}
	u, ok := m.Users[uid]
	if !ok {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, uid)
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.StudentID != nil {
		u.StudentID = *upd.StudentID
	}
	if upd.Introduction != nil {
		u.Introduction = *upd.Introduction
	}
	if upd.ImageURL != nil {
		u.ImageURL = *upd.ImageURL
	}
	m.Users[uid] = u
	return nil
}

func (m *MockStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}
	var users []models.User
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users, nil
}

// CreateProjectForUser mimics the atomic batch: on injected failure
// nothing is persisted, and the projects-list append has set-union
// semantics.
func (m *MockStore) CreateProjectForUser(ctx context.Context, ownerUID string, p models.Project) error {
	if m.CreateProjectError != nil {
		return m.CreateProjectError
	}
	owner, ok := m.Users[ownerUID]
	if !ok {
		return fmt.Errorf("%w: owner profile %s", models.ErrNotFound, ownerUID)
	}

	m.Projects[p.Name] = p
	linked := false
	for _, existing := range owner.Projects {
		if existing == p.Name {
			linked = true
			break
		}
	}
	if !linked {
		owner.Projects = append(owner.Projects, p.Name)
		m.Users[ownerUID] = owner
	}
	return nil
}

func (m *MockStore) ListProjects(ctx context.Context, term string) ([]models.Project, error) {
	if m.ListProjectsError != nil {
		return nil, m.ListProjectsError
	}
	var projects []models.Project
	for _, p := range m.Projects {
		if term == "" || p.Term == term {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (m *MockStore) GetProjectByName(ctx context.Context, name string) (models.Project, error) {
	p, ok := m.Projects[name]
	if !ok {
		return models.Project{}, fmt.Errorf("%w: project %q", models.ErrNotFound, name)
	}
	return p, nil
}

func (m *MockStore) SetProjectPhase(ctx context.Context, name string, phase models.Phase) error {
	p, ok := m.Projects[name]
	if !ok {
		return fmt.Errorf("%w: project %q", models.ErrNotFound, name)
	}
	p.Phase = phase
	m.Projects[name] = p
	return nil
}

func (m *MockStore) ListContests(ctx context.Context, includeFinished bool) ([]models.Contest, error) {
	if m.ListContestsError != nil {
		return nil, m.ListContestsError
	}
	var contests []models.Contest
	for _, c := range m.Contests {
		if !includeFinished && c.Phase == models.PhaseFinished {
			continue
		}
		contests = append(contests, c)
	}
	return contests, nil
}

func (m *MockStore) CreateContest(ctx context.Context, contest models.Contest) error {
	if m.CreateContestError != nil {
		return m.CreateContestError
	}
	m.Contests[contest.ID] = contest
	return nil
}

func (m *MockStore) SetContestPhase(ctx context.Context, id string, phase models.Phase) error {
	c, ok := m.Contests[id]
	if !ok {
		return fmt.Errorf("%w: contest %s", models.ErrNotFound, id)
	}
	c.Phase = phase
	m.Contests[id] = c
	return nil
}

func (m *MockStore) Disconnect(ctx context.Context) error {
	return nil
}

// Ensure MockStore implements Interface
var _ Interface = (*MockStore)(nil)
