/* registration_test.go
 * Contains unit tests for the two-system signup flow and its
 * compensation path.
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

func newRegistrationFixture() (*RegistrationService, *store.MockStore, *MockIdentity) {
	st := store.NewMockStore()
	identity := NewMockIdentity()
	return NewRegistrationService(st, identity), st, identity
}

func validInput() RegistrationInput {
	return RegistrationInput{
		Email:     "alice@example.com",
		Password:  "hunter22",
		Name:      "Alice",
		StudentID: "20240001",
	}
}

func TestRegister_CreatesProfileWithDefaults(t *testing.T) {
	svc, st, identity := newRegistrationFixture()

	user, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.DefaultIntroduction, user.Introduction)
	assert.Equal(t, []models.Role{models.RoleGuest}, user.Roles)
	assert.NotNil(t, user.Projects)
	assert.Empty(t, user.Projects)

	require.Len(t, identity.Created, 1)
	assert.Equal(t, identity.Created[0].AccountID, user.UID)

	stored, err := st.GetUser(context.Background(), user.UID)
	require.NoError(t, err)
	assert.Equal(t, user, stored)
}

func TestRegister_WeakPasswordFailsBeforeAnyWrite(t *testing.T) {
	svc, st, identity := newRegistrationFixture()

	in := validInput()
	in.Password = "12345"
	_, err := svc.Register(context.Background(), in)

	assert.ErrorIs(t, err, models.ErrWeakCredential)
	assert.Empty(t, identity.Created, "no identity account may be created for a weak password")
	assert.Empty(t, st.Users)
}

func TestRegister_InvalidEmailRejected(t *testing.T) {
	svc, _, identity := newRegistrationFixture()

	in := validInput()
	in.Email = "not-an-address"
	_, err := svc.Register(context.Background(), in)

	assert.ErrorIs(t, err, models.ErrValidationFailed)
	assert.Empty(t, identity.Created)
}

func TestRegister_EmailInUsePropagates(t *testing.T) {
	svc, st, _ := newRegistrationFixture()

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Name = "Alice Again"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, models.ErrEmailInUse)
	assert.Len(t, st.Users, 1)
}

func TestRegister_TakenNameGetsSuffix(t *testing.T) {
	svc, st, _ := newRegistrationFixture()
	st.SeedUser(models.User{UID: "u0", Email: "first@example.com", Name: "Alice", Roles: []models.Role{models.RoleGuest}})

	user, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "Alice1", user.Name)
}

func TestRegister_ProfileWriteFailureDeletesIdentity(t *testing.T) {
	svc, st, identity := newRegistrationFixture()
	st.CreateUserProfileError = errors.New("write timeout")

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, models.ErrProfileWriteFailed)

	require.Len(t, identity.Created, 1)
	require.Len(t, identity.Deleted, 1)
	assert.Equal(t, identity.Created[0].AccountID, identity.Deleted[0])
	assert.Empty(t, st.Users)
}

func TestRegister_AllocationFailureDeletesIdentity(t *testing.T) {
	svc, st, identity := newRegistrationFixture()
	st.AllocateNameError = models.ErrStorageUnavailable

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, models.ErrProfileWriteFailed)
	require.Len(t, identity.Deleted, 1)
}

func TestRegister_FailedCleanupReportsOrphan(t *testing.T) {
	svc, st, identity := newRegistrationFixture()
	st.CreateUserProfileError = errors.New("write timeout")
	identity.DeleteIdentityError = errors.New("identity service down")

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, models.ErrCompensationFailed)
	assert.Empty(t, identity.Deleted)
}
