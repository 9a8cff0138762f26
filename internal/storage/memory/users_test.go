package memory

import (
	"context"
	"fmt"
	"testing"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(login string) *models.User {
	return &models.User{
		Email:    fmt.Sprintf("%s@example.com", login),
		Login:    login,
		Name:     login,
		Birthday: fields.NewDate(1990, 6, 15),
	}
}

func mustCreateUser(t *testing.T, s *Users, login string) *models.User {
	t.Helper()
	user, err := s.Create(context.Background(), newTestUser(login))
	require.NoError(t, err)
	return user
}

func TestUsersCreate(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()

	created, err := s.Create(ctx, newTestUser("neo"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "neo", created.Name)

	_, err = s.Create(ctx, newTestUser("neo"))
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestUsersCreateBlankNameDefaultsToLogin(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()

	user := newTestUser("trinity")
	user.Name = ""
	created, err := s.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "trinity", created.Name)
}

func TestUsersUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	mustCreateUser(t, s, "trinity")

	neo.Name = "Thomas Anderson"
	updated, err := s.Update(ctx, neo)
	require.NoError(t, err)
	assert.Equal(t, "Thomas Anderson", updated.Name)

	neo.Email = "trinity@example.com"
	_, err = s.Update(ctx, neo)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	neo.Email = "anderson@example.com"
	_, err = s.Update(ctx, neo)
	require.NoError(t, err)
	got, err := s.GetByEmail(ctx, "anderson@example.com")
	require.NoError(t, err)
	assert.Equal(t, neo.ID, got.ID)
	_, err = s.GetByEmail(ctx, "neo@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	missing := newTestUser("ghost")
	missing.ID = 99
	_, err = s.Update(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsersAddFriend(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")

	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))

	// a fresh edge starts as an unconfirmed request, one direction only
	got, err := s.Get(ctx, neo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusRequested, got.Friends[trinity.ID])
	other, err := s.Get(ctx, trinity.ID)
	require.NoError(t, err)
	assert.Empty(t, other.Friends)

	// repeated request is a no-op
	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))
	friends, err := s.ListFriends(ctx, neo.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)

	assert.ErrorIs(t, s.AddFriend(ctx, neo.ID, 99), storage.ErrNotFound)
	assert.ErrorIs(t, s.AddFriend(ctx, 99, neo.ID), storage.ErrNotFound)
}

func TestUsersConfirmFriend(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")

	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))
	// one-sided request cannot be confirmed yet
	assert.ErrorIs(t, s.ConfirmFriend(ctx, neo.ID, trinity.ID), storage.ErrNotFound)

	require.NoError(t, s.AddFriend(ctx, trinity.ID, neo.ID))
	require.NoError(t, s.ConfirmFriend(ctx, neo.ID, trinity.ID))

	got, err := s.Get(ctx, neo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusConfirmed, got.Friends[trinity.ID])
	other, err := s.Get(ctx, trinity.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusConfirmed, other.Friends[neo.ID])
}

func TestUsersDeleteFriend(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")

	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))
	require.NoError(t, s.DeleteFriend(ctx, neo.ID, trinity.ID))

	got, err := s.Get(ctx, neo.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Friends)

	// deleting again, or deleting an edge that never existed, is silent
	require.NoError(t, s.DeleteFriend(ctx, neo.ID, trinity.ID))
	require.NoError(t, s.DeleteFriend(ctx, neo.ID, 99))
}

func TestUsersDeleteFriendKeepsReverseEdge(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")

	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))
	require.NoError(t, s.AddFriend(ctx, trinity.ID, neo.ID))
	require.NoError(t, s.DeleteFriend(ctx, neo.ID, trinity.ID))

	// only the forward edge goes away
	other, err := s.Get(ctx, trinity.ID)
	require.NoError(t, err)
	assert.Contains(t, other.Friends, neo.ID)
}

func TestUsersHasRelationship(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")

	has, err := s.HasRelationship(ctx, neo.ID, trinity.ID)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))

	// the check is symmetric even though the edge is directed
	has, err = s.HasRelationship(ctx, neo.ID, trinity.ID)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = s.HasRelationship(ctx, trinity.ID, neo.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestUsersListFriendsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")
	morpheus := mustCreateUser(t, s, "morpheus")

	require.NoError(t, s.AddFriend(ctx, neo.ID, morpheus.ID))
	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))

	friends, err := s.ListFriends(ctx, neo.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, morpheus.ID, friends[0].ID)
	assert.Equal(t, trinity.ID, friends[1].ID)

	_, err = s.ListFriends(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsersListCommonFriends(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")
	morpheus := mustCreateUser(t, s, "morpheus")
	smith := mustCreateUser(t, s, "smith")

	require.NoError(t, s.AddFriend(ctx, neo.ID, morpheus.ID))
	require.NoError(t, s.AddFriend(ctx, neo.ID, smith.ID))
	require.NoError(t, s.AddFriend(ctx, trinity.ID, morpheus.ID))

	common, err := s.ListCommonFriends(ctx, neo.ID, trinity.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, morpheus.ID, common[0].ID)
	assert.Equal(t, "morpheus", common[0].Login)

	empty, err := s.ListCommonFriends(ctx, neo.ID, smith.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUsersDeleteCascadesEdges(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	neo := mustCreateUser(t, s, "neo")
	trinity := mustCreateUser(t, s, "trinity")

	require.NoError(t, s.AddFriend(ctx, neo.ID, trinity.ID))
	require.NoError(t, s.AddFriend(ctx, trinity.ID, neo.ID))
	require.NoError(t, s.Delete(ctx, trinity.ID))

	got, err := s.Get(ctx, neo.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Friends)
	friends, err := s.ListFriends(ctx, neo.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// the email is free for reuse after deletion
	_, err = s.Create(ctx, newTestUser("trinity"))
	require.NoError(t, err)
}
