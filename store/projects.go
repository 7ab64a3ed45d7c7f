/* projects.go
 * Contains the methods for interacting with the projects collection,
 * including the atomic create-and-link batch.
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"contest-platform/models"
)

// CreateProjectForUser inserts the project document and appends its
// name to the owner's projects list in one transaction: both commit or
// neither does. The append uses $addToSet, so re-adding a name already
// present leaves the list unchanged.
func (s *Store) CreateProjectForUser(ctx context.Context, ownerUID string, p models.Project) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}

	session, err := s.Client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: starting session: %v", models.ErrStorageUnavailable, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.Collections.Projects.InsertOne(sc, p); err != nil {
			return nil, err
		}
		res, err := s.Collections.Users.UpdateByID(sc, ownerUID,
			bson.M{"$addToSet": bson.M{"projects": p.Name}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: owner profile %s", models.ErrNotFound, ownerUID)
		}
		return fmt.Errorf("%w: project batch commit failed: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}

// ListProjects returns project documents, optionally filtered to one
// contest term.
func (s *Store) ListProjects(ctx context.Context, term string) ([]models.Project, error) {
	filter := bson.M{}
	if term != "" {
		filter["term"] = term
	}

	cursor, err := s.Collections.Projects.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: listing projects: %v", models.ErrStorageUnavailable, err)
	}

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("%w: unpacking project cursor: %v", models.ErrStorageUnavailable, err)
	}
	for _, p := range projects {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrDecodeFailed, err)
		}
	}
	return projects, nil
}

// GetProjectByName fetches one project by its unique display name.
func (s *Store) GetProjectByName(ctx context.Context, name string) (models.Project, error) {
	var p models.Project
	err := s.Collections.Projects.FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Project{}, fmt.Errorf("%w: project %q", models.ErrNotFound, name)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: fetching project %q: %v", models.ErrStorageUnavailable, name, err)
	}
	if err := p.Validate(); err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", models.ErrDecodeFailed, err)
	}
	return p, nil
}

// SetProjectPhase writes the phase field directly. Privileged callers
// only; no transition legality is enforced.
func (s *Store) SetProjectPhase(ctx context.Context, name string, phase models.Phase) error {
	res, err := s.Collections.Projects.UpdateOne(ctx,
		bson.M{"name": name}, bson.M{"$set": bson.M{"phase": phase}})
	if err != nil {
		return fmt.Errorf("%w: updating phase of project %q: %v", models.ErrStorageUnavailable, name, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: project %q", models.ErrNotFound, name)
	}
	return nil
}
