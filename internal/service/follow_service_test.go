package service

import (
	"context"
	"testing"

	"scribe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	reader := &models.User{ID: 1, Username: "reader"}
	author := &models.User{ID: 2, Username: "author"}
	users := newUserRepoStub(reader, author)
	follows := newFollowRepoStub()
	svc := NewFollowService(follows, users)
	ctx := context.Background()

	created, err := svc.Follow(ctx, reader, "author")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Follow(ctx, reader, "author")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, follows.edges, 1, "following twice keeps one edge")

	_, err = svc.Follow(ctx, reader, "ghost")
	assert.True(t, models.IsNotFound(err))
}

func TestFollowService_FollowSelfIsNoop(t *testing.T) {
	reader := &models.User{ID: 1, Username: "reader"}
	users := newUserRepoStub(reader)
	follows := newFollowRepoStub()
	svc := NewFollowService(follows, users)

	created, err := svc.Follow(context.Background(), reader, "reader")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, follows.edges)
	assert.Zero(t, users.lookups, "self-follow does not look the author up")
}

func TestFollowService_Unfollow(t *testing.T) {
	reader := &models.User{ID: 1, Username: "reader"}
	author := &models.User{ID: 2, Username: "author"}
	users := newUserRepoStub(reader, author)
	follows := newFollowRepoStub()
	svc := NewFollowService(follows, users)
	ctx := context.Background()

	assert.True(t, models.IsNotFound(svc.Unfollow(ctx, reader, "author")), "no edge yet")

	_, err := svc.Follow(ctx, reader, "author")
	require.NoError(t, err)
	require.NoError(t, svc.Unfollow(ctx, reader, "author"))
	assert.Empty(t, follows.edges)

	assert.True(t, models.IsNotFound(svc.Unfollow(ctx, reader, "ghost")))
}
