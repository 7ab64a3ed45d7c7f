/* store.go
 * Contains the Store struct and NewStore. The collection methods live in
 * names.go, users.go, projects.go and contests.go, one file per concern.
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the document store.
const (
	UsersCollection    = "users"
	ProjectsCollection = "projects"
	ContestsCollection = "contests"
)

// DefaultMaxNameAttempts bounds the unique-name suffix search.
const DefaultMaxNameAttempts = 50

type Store struct {
	Client          *mongo.Client
	Database        *mongo.Database
	MaxNameAttempts int
	Collections     struct {
		Users    *mongo.Collection
		Projects *mongo.Collection
		Contests *mongo.Collection
	}
}

// NewStore connects to the document store and binds the three flat
// collections. maxNameAttempts <= 0 selects the default.
func NewStore(dbName string, mongoURI string, maxNameAttempts int) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("db name cannot be empty")
	}
	if maxNameAttempts <= 0 {
		maxNameAttempts = DefaultMaxNameAttempts
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:          client,
		Database:        db,
		MaxNameAttempts: maxNameAttempts,
	}
	s.Collections.Users = db.Collection(UsersCollection)
	s.Collections.Projects = db.Collection(ProjectsCollection)
	s.Collections.Contests = db.Collection(ContestsCollection)
	return s, nil
}

// collection resolves a collection name used by the name allocator.
func (s *Store) collection(name string) (*mongo.Collection, error) {
	switch name {
	case UsersCollection:
		return s.Collections.Users, nil
	case ProjectsCollection:
		return s.Collections.Projects, nil
	case ContestsCollection:
		return s.Collections.Contests, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", name)
	}
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
