/* contests.go
 * Contains the methods for interacting with the contests collection.
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"contest-platform/models"
)

// ListContests returns contest documents. By default contests in the
// FINISHED phase are filtered out, matching what the project-creation
// form offers for selection.
func (s *Store) ListContests(ctx context.Context, includeFinished bool) ([]models.Contest, error) {
	filter := bson.M{}
	if !includeFinished {
		filter["phase"] = bson.M{"$ne": models.PhaseFinished}
	}

	cursor, err := s.Collections.Contests.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: listing contests: %v", models.ErrStorageUnavailable, err)
	}

	var contests []models.Contest
	if err := cursor.All(ctx, &contests); err != nil {
		return nil, fmt.Errorf("%w: unpacking contest cursor: %v", models.ErrStorageUnavailable, err)
	}
	for _, c := range contests {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrDecodeFailed, err)
		}
	}
	return contests, nil
}

// CreateContest writes a new contest document.
func (s *Store) CreateContest(ctx context.Context, contest models.Contest) error {
	if err := contest.Validate(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}
	if _, err := s.Collections.Contests.InsertOne(ctx, contest); err != nil {
		return fmt.Errorf("%w: inserting contest %q: %v", models.ErrStorageUnavailable, contest.Term, err)
	}
	return nil
}

// SetContestPhase writes the phase field directly. Privileged callers
// only.
func (s *Store) SetContestPhase(ctx context.Context, id string, phase models.Phase) error {
	res, err := s.Collections.Contests.UpdateByID(ctx, id, bson.M{"$set": bson.M{"phase": phase}})
	if err != nil {
		return fmt.Errorf("%w: updating phase of contest %s: %v", models.ErrStorageUnavailable, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: contest %s", models.ErrNotFound, id)
	}
	return nil
}
