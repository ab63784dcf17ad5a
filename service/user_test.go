package service

import (
	"testing"

	"hostelhub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	s := UserService{}

	err := s.Register(&User{Username: "alice", Email: "alice@example.com", Password: "s3cret"}, nil)
	require.NoError(t, err)

	stored, err := model.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, stored.Role)
	assert.NotEqual(t, "s3cret", stored.Password)

	token, err := s.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = s.Login("alice", "wrong")
	assert.Error(t, err)
	_, err = s.Login("nobody", "s3cret")
	assert.Error(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	setupTestDB(t)
	s := UserService{}

	require.NoError(t, s.Register(&User{Username: "alice", Email: "alice@example.com", Password: "pw"}, nil))
	err := s.Register(&User{Username: "alice", Email: "other@example.com", Password: "pw"}, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterRoleRequiresAdmin(t *testing.T) {
	setupTestDB(t)
	s := UserService{}

	staff := &User{Username: "warden", Email: "warden@example.com", Password: "pw", Role: model.RoleStaff}

	err := s.Register(staff, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	err = s.Register(staff, &AccessDetails{UserID: 1, Role: model.RoleStudent})
	assert.ErrorIs(t, err, ErrForbidden)

	err = s.Register(staff, &AccessDetails{UserID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	stored, err := model.GetUserByUsername("warden")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, stored.Role)
}

func TestTokenRoundTrip(t *testing.T) {
	ts := TokenService{}
	td, err := ts.CreateToken(42, "alice", model.RoleStaff)
	require.NoError(t, err)
	require.NotEmpty(t, td.AccessToken)
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "staff", "student"} {
		role, err := model.ParseRole(valid)
		require.NoError(t, err)
		assert.EqualValues(t, valid, role)
	}
	_, err := model.ParseRole("superuser")
	assert.Error(t, err)
	_, err = model.ParseRole("")
	assert.Error(t, err)
}

func TestAssignRoom(t *testing.T) {
	setupTestDB(t)
	s := UserService{}
	rooms := RoomService{}

	student := createTestUser(t, "alice", model.RoleStudent)
	staff := createTestUser(t, "warden", model.RoleStaff)
	room, err := rooms.Create("101", 1, 1)
	require.NoError(t, err)

	require.NoError(t, s.AssignRoom(student.ID, room.ID))
	updated, err := model.GetUserByID(student.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.RoomID)
	assert.Equal(t, room.ID, *updated.RoomID)

	// room is now full
	other := createTestUser(t, "bob", model.RoleStudent)
	assert.ErrorIs(t, s.AssignRoom(other.ID, room.ID), ErrConflict)

	// re-assigning the same room is a no-op, not a capacity error
	require.NoError(t, s.AssignRoom(student.ID, room.ID))

	assert.ErrorIs(t, s.AssignRoom(staff.ID, room.ID), ErrValidation)
	assert.ErrorIs(t, s.AssignRoom(9999, room.ID), ErrNotFound)
	assert.ErrorIs(t, s.AssignRoom(other.ID, 9999), ErrNotFound)
}
