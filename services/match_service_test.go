package services

import (
	"context"
	"sync"
	"testing"

	"careconnect_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatchIfAbsentSymmetric(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, match, err := env.matches.CreateMatchIfAbsent(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", match.UserA)
	assert.Equal(t, "bob", match.UserB)
	assert.Equal(t, "alice#bob", match.MatchID)

	// The reversed argument order hits the same document
	created, existing, err := env.matches.CreateMatchIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, match.MatchID, existing.MatchID)
	assert.Len(t, env.store.table(models.MatchesTable), 1)
}

func TestCreateMatchIfAbsentConcurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const callers = 16
	var wg sync.WaitGroup
	createdCount := make([]bool, callers)
	errs := make([]error, callers)

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			// Alternate argument order to exercise canonicalization
			x, y := "alice", "bob"
			if i%2 == 1 {
				x, y = y, x
			}
			createdCount[i], _, errs[i] = env.matches.CreateMatchIfAbsent(ctx, x, y)
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		if createdCount[i] {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "conditional create admits exactly one winner")
	assert.Len(t, env.store.table(models.MatchesTable), 1)
}

func TestGetMatchNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.matches.GetMatch(context.Background(), "alice#bob")
	assert.ErrorIs(t, err, ErrMatchNotFound)

	exists, err := env.matches.MatchExists(context.Background(), "alice#bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetMatchesForUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedProfile(t, "alice", models.RoleCaregiver)
	env.seedProfile(t, "bob", models.RoleCareSeeker)
	env.seedProfile(t, "carol", models.RoleCareSeeker)

	_, _, err := env.matches.CreateMatchIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	_, _, err = env.matches.CreateMatchIfAbsent(ctx, "alice", "carol")
	require.NoError(t, err)
	_, _, err = env.matches.CreateMatchIfAbsent(ctx, "bob", "carol")
	require.NoError(t, err)

	matches, err := env.matches.GetMatchesForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	counterparts := map[string]bool{}
	for _, m := range matches {
		counterparts[m.Profile.UserID] = true
		assert.True(t, m.HasParticipant("alice"))
	}
	assert.True(t, counterparts["bob"])
	assert.True(t, counterparts["carol"])
}

func TestGetMatchesForUserSkipsMissingProfiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedProfile(t, "alice", models.RoleCaregiver)
	env.seedProfile(t, "bob", models.RoleCareSeeker)

	_, _, err := env.matches.CreateMatchIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	_, _, err = env.matches.CreateMatchIfAbsent(ctx, "alice", "ghost")
	require.NoError(t, err)

	matches, err := env.matches.GetMatchesForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "bob", matches[0].Profile.UserID)
}
