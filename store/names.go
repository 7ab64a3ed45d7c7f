/* names.go
 * Contains the unique-name allocator used for user and project display
 * names.
 */

package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/unicode/norm"

	"contest-platform/models"
)

// AllocateName derives a value for field that no document in the named
// collection currently holds, starting from base and appending 1, 2, …
// until a free suffix is found. The first free suffix always wins;
// freed lower suffixes are not backfilled.
//
// The check is read-only and does not reserve the name, so two
// concurrent calls with the same base can both observe a candidate as
// free and end up committing duplicates. Accepted limitation:
// contention on a single base name is rare and a duplicate is
// recoverable by rename.
func (s *Store) AllocateName(ctx context.Context, collection, field, base string) (string, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}
	return allocateName(ctx, base, s.MaxNameAttempts, func(ctx context.Context, candidate string) (bool, error) {
		count, err := coll.CountDocuments(ctx, bson.M{field: candidate})
		if err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// allocateName runs the suffix search against an arbitrary taken-check,
// so the loop is testable without a live store.
func allocateName(ctx context.Context, base string, maxAttempts int, taken func(context.Context, string) (bool, error)) (string, error) {
	base = strings.TrimSpace(norm.NFC.String(base))
	if base == "" {
		return "", fmt.Errorf("%w: base name cannot be empty", models.ErrValidationFailed)
	}

	candidate := base
	for counter := 1; counter <= maxAttempts; counter++ {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: name lookup for %q failed: %v", models.ErrStorageUnavailable, candidate, err)
		}
		if !inUse {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(counter)
	}
	return "", fmt.Errorf("%w: no free name for %q within %d attempts", models.ErrAllocationExhausted, base, maxAttempts)
}

// UserNameExists reports whether any user document holds the given
// display name. Used when project creation checks that leader and
// member names reference real users.
func (s *Store) UserNameExists(ctx context.Context, name string) (bool, error) {
	count, err := s.Collections.Users.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("%w: user name lookup failed: %v", models.ErrStorageUnavailable, err)
	}
	return count > 0, nil
}
