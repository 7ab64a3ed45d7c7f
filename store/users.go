/* users.go
 * Contains the methods for interacting with the users collection.
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

// GetUser fetches the profile document keyed by the identity provider's
// account id.
func (s *Store) GetUser(ctx context.Context, uid string) (models.User, error) {
	var u models.User
	err := s.Collections.Users.FindOne(ctx, bson.M{"_id": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("%w: user %s", models.ErrNotFound, uid)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: fetching user %s: %v", models.ErrStorageUnavailable, uid, err)
	}
	if err := u.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrDecodeFailed, err)
	}
	return u, nil
}

// GetUserByName fetches a profile by its unique display name.
func (s *Store) GetUserByName(ctx context.Context, name string) (models.User, error) {
	var u models.User
	err := s.Collections.Users.FindOne(ctx, bson.M{"name": name}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("%w: user %q", models.ErrNotFound, name)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: fetching user %q: %v", models.ErrStorageUnavailable, name, err)
	}
	if err := u.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrDecodeFailed, err)
	}
	return u, nil
}

// CreateUserProfile writes a new profile document. The uid key comes
// from the identity provider and is written exactly once.
func (s *Store) CreateUserProfile(ctx context.Context, u models.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}
	if _, err := s.Collections.Users.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("%w: inserting profile for %s: %v", models.ErrStorageUnavailable, u.UID, err)
	}
	return nil
}

// UpdateUserProfile applies a partial profile edit. Only the non-nil
// fields of upd are written.
func (s *Store) UpdateUserProfile(ctx context.Context, uid string, upd models.UserProfileUpdate) error {
	if upd.Empty() {
		return nil
	}
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.StudentID != nil {
		set["studentId"] = *upd.StudentID
	}
	if upd.Introduction != nil {
		set["introduction"] = *upd.Introduction
	}
	if upd.ImageURL != nil {
		set["imageUrl"] = *upd.ImageURL
	}

	res, err := s.Collections.Users.UpdateByID(ctx, uid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: updating profile for %s: %v", models.ErrStorageUnavailable, uid, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, uid)
	}
	return nil
}

// ListUsers returns every profile document. A document that fails shape
// validation fails the whole read rather than being skipped silently.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.Collections.Users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: listing users: %v", models.ErrStorageUnavailable, err)
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%w: unpacking user cursor: %v", models.ErrStorageUnavailable, err)
	}
	for _, u := range users {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrDecodeFailed, err)
		}
	}
	return users, nil
}
