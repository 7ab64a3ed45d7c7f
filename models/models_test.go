package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase_KnownValues(t *testing.T) {
	p, err := ParsePhase("REGISTERED")
	require.NoError(t, err)
	assert.Equal(t, PhaseRegistered, p)

	p, err = ParsePhase("AWARDED_GRAND")
	require.NoError(t, err)
	assert.Equal(t, PhaseAwardedGrand, p)
}

func TestParsePhase_RejectsUnknownAndCaseMismatch(t *testing.T) {
	_, err := ParsePhase("registered")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = ParsePhase("LAUNCHED")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = ParsePhase("")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUserValidate(t *testing.T) {
	valid := User{UID: "u1", Email: "a@x.com", Name: "Alice", Roles: []Role{RoleGuest}}
	assert.NoError(t, valid.Validate())

	noRoles := valid
	noRoles.Roles = nil
	assert.Error(t, noRoles.Validate())

	badRole := valid
	badRole.Roles = []Role{"SUPERUSER"}
	assert.Error(t, badRole.Validate())
}

func TestSessionHasRole_NilSafe(t *testing.T) {
	var s *Session
	assert.False(t, s.HasRole(RoleAdmin))

	s = &Session{UID: "u1", Roles: []Role{RoleAdmin, RoleStaff}}
	assert.True(t, s.HasRole(RoleAdmin))
	assert.False(t, s.HasRole(RoleGuest))
}
