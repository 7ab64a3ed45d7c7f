/* store_interface.go
 * Contains the Interface the services depend on, for dependency
 * injection and testing against the in-memory mock.
 */

package store

import (
	"context"

	"contest-platform/models"
)

// Interface defines the methods Store implements against the document
// store. Services hold this instead of *Store so tests can substitute
// MockStore.
type Interface interface {
	// AllocateName derives a collision-free value for field within the
	// named collection, starting from base.
	AllocateName(ctx context.Context, collection, field, base string) (string, error)

	UserNameExists(ctx context.Context, name string) (bool, error)
	GetUser(ctx context.Context, uid string) (models.User, error)
	GetUserByName(ctx context.Context, name string) (models.User, error)
	CreateUserProfile(ctx context.Context, u models.User) error
	UpdateUserProfile(ctx context.Context, uid string, upd models.UserProfileUpdate) error
	ListUsers(ctx context.Context) ([]models.User, error)

	// CreateProjectForUser commits the project document and the owner's
	// projects-list update as one atomic batch.
	CreateProjectForUser(ctx context.Context, ownerUID string, p models.Project) error
	ListProjects(ctx context.Context, term string) ([]models.Project, error)
	GetProjectByName(ctx context.Context, name string) (models.Project, error)
	SetProjectPhase(ctx context.Context, name string, phase models.Phase) error

	ListContests(ctx context.Context, includeFinished bool) ([]models.Contest, error)
	CreateContest(ctx context.Context, contest models.Contest) error
	SetContestPhase(ctx context.Context, id string, phase models.Phase) error

	Disconnect(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
