/* test_mocks.go
 * Contains an in-memory MockIdentity implementing IdentityProvider,
 * used by the registration and middleware tests.
 */

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"contest-platform/models"
)

// MockIdentity implements IdentityProvider in memory and records every
// call so tests can assert on the compensation path.
type MockIdentity struct {
	Created []Identity // accounts issued by CreateIdentity, in order
	Deleted []string   // account ids passed to DeleteIdentity, in order

	// Tokens maps access tokens to account ids for ValidateToken.
	Tokens map[string]string

	// Error injection for testing failure paths.
	CreateIdentityError error
	DeleteIdentityError error
}

func NewMockIdentity() *MockIdentity {
	return &MockIdentity{Tokens: make(map[string]string)}
}

var _ IdentityProvider = (*MockIdentity)(nil)

func (m *MockIdentity) CreateIdentity(ctx context.Context, email, password string) (Identity, error) {
	if m.CreateIdentityError != nil {
		return Identity{}, m.CreateIdentityError
	}
	for _, existing := range m.Created {
		if existing.Email == email {
			return Identity{}, fmt.Errorf("%w: %s", models.ErrEmailInUse, email)
		}
	}
	identity := Identity{AccountID: uuid.NewString(), Email: email}
	m.Created = append(m.Created, identity)
	return identity, nil
}

func (m *MockIdentity) DeleteIdentity(ctx context.Context, accountID string) error {
	if m.DeleteIdentityError != nil {
		return m.DeleteIdentityError
	}
	m.Deleted = append(m.Deleted, accountID)
	return nil
}

func (m *MockIdentity) ValidateToken(ctx context.Context, accessToken string) (string, error) {
	accountID, ok := m.Tokens[accessToken]
	if !ok {
		return "", models.ErrNotAuthenticated
	}
	return accountID, nil
}
