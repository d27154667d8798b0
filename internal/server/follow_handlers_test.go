package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"scribe/internal/models"
	"scribe/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFollows(t *testing.T, env *testEnv) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(&models.Follow{}).Count(&n).Error)
	return n
}

func TestFollowTwiceCreatesOneEdge(t *testing.T) {
	env := newTestEnv(t)
	reader := testutil.CreateUser(t, env.db, "reader")
	testutil.CreateUser(t, env.db, "author")

	assertRedirect(t, env.get(t, "/profile/author/follow/", reader), "/profile/author/")

	req := httptest.NewRequest(http.MethodPost, "/profile/author/follow/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+env.token(t, reader))
	assertRedirect(t, env.do(t, req), "/profile/author/")

	assert.Equal(t, int64(1), countFollows(t, env))
}

func TestFollowSelfIsNoop(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "narcissus")

	assertRedirect(t, env.get(t, "/profile/narcissus/follow/", user), "/profile/narcissus/")
	assert.Equal(t, int64(0), countFollows(t, env))
}

func TestFollowUnknownAuthor(t *testing.T) {
	env := newTestEnv(t)
	reader := testutil.CreateUser(t, env.db, "reader")

	resp := env.get(t, "/profile/nobody/follow/", reader)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(0), countFollows(t, env))
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	reader := testutil.CreateUser(t, env.db, "reader")
	author := testutil.CreateUser(t, env.db, "author")

	// No edge yet.
	assert.Equal(t, http.StatusNotFound, env.get(t, "/profile/author/unfollow/", reader).StatusCode)
	assert.Equal(t, http.StatusNotFound, env.get(t, "/profile/nobody/unfollow/", reader).StatusCode)

	testutil.CreateFollow(t, env.db, reader, author)
	assertRedirect(t, env.get(t, "/profile/author/unfollow/", reader), "/profile/author/")
	assert.Equal(t, int64(0), countFollows(t, env))
}
