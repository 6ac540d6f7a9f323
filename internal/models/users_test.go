package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicebank/pkg/errors"
)

func TestRegisterUser(t *testing.T) {
	db := openTestDB(t)

	user, err := RegisterUser(db, RegisterUserForm{
		Email:        "asha@example.com",
		Password:     "secret123",
		FullName:     "Asha Rao",
		MotherTongue: "Kannada",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	_, err = RegisterUser(db, RegisterUserForm{
		Email:    "asha@example.com",
		Password: "another1",
	})
	require.Error(t, err)
	assert.Equal(t, 409, errors.GetCode(err))
}

func TestAuthenticateUser(t *testing.T) {
	db := openTestDB(t)
	createTestUser(t, db, "asha@example.com", "Asha Rao")

	t.Run("valid credentials", func(t *testing.T) {
		user, err := AuthenticateUser(db, "asha@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", user.Email)
	})

	// Unknown email and wrong password must be indistinguishable.
	t.Run("wrong password", func(t *testing.T) {
		_, err := AuthenticateUser(db, "asha@example.com", "wrong-pass")
		require.Error(t, err)
		assert.Equal(t, 401, errors.GetCode(err))
		assert.Equal(t, "Invalid credentials", errors.GetMessage(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := AuthenticateUser(db, "nobody@example.com", "secret123")
		require.Error(t, err)
		assert.Equal(t, 401, errors.GetCode(err))
		assert.Equal(t, "Invalid credentials", errors.GetMessage(err))
	})
}

func TestUpdateProfile(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "asha@example.com", "Asha Rao")

	updated, err := UpdateProfile(db, user.ID, ProfileForm{
		FullName:     "Asha R",
		Phone:        "9876543210",
		State:        "Karnataka",
		MotherTongue: "Kannada",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.FullName)
	assert.Equal(t, "Karnataka", updated.State)

	_, err = UpdateProfile(db, 999, ProfileForm{})
	require.Error(t, err)
	assert.Equal(t, 404, errors.GetCode(err))
}

func TestUpsertAdmin(t *testing.T) {
	db := openTestDB(t)

	created, err := UpsertAdmin(db, "admin", "first-pass")
	require.NoError(t, err)

	rotated, err := UpsertAdmin(db, "admin", "second-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, rotated.ID)

	_, err = AuthenticateAdmin(db, "admin", "first-pass")
	require.Error(t, err)
	admin, err := AuthenticateAdmin(db, "admin", "second-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
}

func TestTokens(t *testing.T) {
	t.Run("user token round trip", func(t *testing.T) {
		user := &User{ID: 7, Email: "asha@example.com"}
		token, err := IssueUserToken(user)
		require.NoError(t, err)

		claims, err := VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "asha@example.com", claims.Email)
		assert.False(t, claims.Admin)
	})

	t.Run("admin token carries the admin flag", func(t *testing.T) {
		token, err := IssueAdminToken(&AdminUser{ID: 1, Username: "admin"})
		require.NoError(t, err)

		claims, err := VerifyToken(token)
		require.NoError(t, err)
		assert.True(t, claims.Admin)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := VerifyToken("not.a.token")
		require.Error(t, err)
		assert.Equal(t, 403, errors.GetCode(err))
	})
}
