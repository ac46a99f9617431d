package services

import (
	"context"
	"testing"

	"careconnect_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUserProfileValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.profiles.AddUserProfile(ctx, models.UserProfile{Role: models.RoleCaregiver})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.profiles.AddUserProfile(ctx, models.UserProfile{UserID: "alice", Role: "wizard"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	profile, err := env.profiles.AddUserProfile(ctx, models.UserProfile{UserID: "alice", Role: models.RoleCaregiver})
	require.NoError(t, err)
	assert.NotEmpty(t, profile.CreatedAt)

	fetched, err := env.profiles.GetUserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaregiver, fetched.Role)
}

func TestGetUserProfileNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profiles.GetUserProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateUserProfileFieldWhitelist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedProfile(t, "alice", models.RoleCaregiver)

	updated, err := env.profiles.UpdateUserProfile(ctx, "alice", map[string]string{
		"name": "Alice M.",
		"bio":  "Pediatric nurse, 10 years",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice M.", updated.Name)
	assert.Equal(t, "Pediatric nurse, 10 years", updated.Bio)
	assert.Equal(t, models.RoleCaregiver, updated.Role)

	_, err = env.profiles.UpdateUserProfile(ctx, "alice", map[string]string{"role": models.RoleCareSeeker})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.profiles.UpdateUserProfile(ctx, "alice", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteUserProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedProfile(t, "alice", models.RoleCaregiver)

	require.NoError(t, env.profiles.DeleteUserProfile(ctx, "alice"))

	_, err := env.profiles.GetUserProfile(ctx, "alice")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetDiscoveryFeedOppositeRoleOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedProfile(t, "alice", models.RoleCaregiver)
	env.seedProfile(t, "anna", models.RoleCaregiver)
	env.seedProfile(t, "bob", models.RoleCareSeeker)
	env.seedProfile(t, "carol", models.RoleCareSeeker)

	feed, err := env.profiles.GetDiscoveryFeed(ctx, "alice")
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, p := range feed {
		ids[p.UserID] = true
		assert.Equal(t, models.RoleCareSeeker, p.Role)
	}
	assert.False(t, ids["alice"], "feed never contains the caller")
	assert.False(t, ids["anna"], "feed never contains the caller's role")
	assert.True(t, ids["bob"])
	assert.True(t, ids["carol"])
}

func TestGetDiscoveryFeedExcludesDecidedCandidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedProfile(t, "alice", models.RoleCaregiver)
	env.seedProfile(t, "bob", models.RoleCareSeeker)
	env.seedProfile(t, "carol", models.RoleCareSeeker)
	env.seedProfile(t, "dave", models.RoleCareSeeker)

	// One like, one pass: both count as decided
	_, err := env.swipe.Decide(ctx, "alice", "bob", true)
	require.NoError(t, err)
	_, err = env.swipe.Decide(ctx, "alice", "carol", false)
	require.NoError(t, err)

	feed, err := env.profiles.GetDiscoveryFeed(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "dave", feed[0].UserID)
}

func TestGetDiscoveryFeedUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profiles.GetDiscoveryFeed(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
