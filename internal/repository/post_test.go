package repository

import (
	"context"
	"regexp"
	"testing"

	"scribe/internal/models"
	"scribe/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "leo")
	created := testutil.CreatePosts(t, db, author, nil, 13)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)

	first, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, created[12].ID, first[0].ID)
	assert.Equal(t, "leo", first[0].Author.Username)

	second, err := repo.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{created[2].ID, created[1].ID, created[0].ID}, postIDs(second))
}

func TestPostRepository_SameTimestampOrdersByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	author := testutil.CreateUser(t, db, "leo")

	a := testutil.CreatePost(t, db, author, nil, "a")
	b := testutil.CreatePost(t, db, author, nil, "b")
	require.NoError(t, db.Exec("UPDATE posts SET pub_date = ?", a.PubDate).Error)

	posts, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID, a.ID}, postIDs(posts))
}

func TestPostRepository_ListByGroupAndAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	mia := testutil.CreateUser(t, db, "mia")
	g1 := testutil.CreateGroup(t, db, "Test group 1", "test-slug-1")
	g2 := testutil.CreateGroup(t, db, "Test group 2", "test-slug-2")

	testutil.CreatePosts(t, db, leo, g1, 11)
	testutil.CreatePost(t, db, mia, g2, "elsewhere")
	testutil.CreatePost(t, db, mia, nil, "no group")

	n, err := repo.CountByGroup(ctx, g1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)

	posts, err := repo.ListByGroup(ctx, g1.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 10)
	for _, p := range posts {
		require.NotNil(t, p.Group)
		assert.Equal(t, "test-slug-1", p.Group.Slug)
	}

	n, err = repo.CountByAuthor(ctx, mia.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	byMia, err := repo.ListByAuthor(ctx, mia.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, byMia, 2)
	assert.Equal(t, "no group", byMia[0].Text)
	assert.Nil(t, byMia[0].Group)
}

func TestPostRepository_ListFollowed(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader")
	followed := testutil.CreateUser(t, db, "followed")
	other := testutil.CreateUser(t, db, "other")

	p1 := testutil.CreatePost(t, db, followed, nil, "from followed")
	testutil.CreatePost(t, db, other, nil, "from other")
	testutil.CreateFollow(t, db, reader, followed)
	// Another user's edge must not leak into reader's feed.
	testutil.CreateFollow(t, db, other, other)

	posts, err := repo.ListFollowed(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, p1.ID, posts[0].ID)
	assert.Equal(t, followed.ID, posts[0].AuthorID)
	assert.Equal(t, "from followed", posts[0].Text)

	n, err := repo.CountFollowed(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountFollowed(ctx, followed.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostRepository_GetUpdateDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "leo")
	commenter := testutil.CreateUser(t, db, "mia")
	group := testutil.CreateGroup(t, db, "G", "g")
	post := testutil.CreatePost(t, db, author, nil, "original")
	testutil.CreateComment(t, db, commenter, post, "nice")

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", got.Author.Username)
	originalDate := got.PubDate

	got.Text = "edited"
	got.GroupID = &group.ID
	got.Image = "posts/small.gif"
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded.Text)
	require.NotNil(t, reloaded.Group)
	assert.Equal(t, "g", reloaded.Group.Slug)
	assert.Equal(t, "posts/small.gif", reloaded.Image)
	assert.Equal(t, author.ID, reloaded.AuthorID)
	assert.True(t, originalDate.Equal(reloaded.PubDate))

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetByID(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)

	assert.True(t, models.IsNotFound(repo.Delete(ctx, post.ID)))
	assert.True(t, models.IsNotFound(repo.Update(ctx, &models.Post{ID: 999, Text: "x"})))
}

func TestPostRepository_GetByIDErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(7, 1).
		WillReturnError(gorm.ErrRecordNotFound)
	_, err := repo.GetByID(context.Background(), 7)
	assert.True(t, models.IsNotFound(err))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(8, 1).
		WillReturnError(assert.AnError)
	_, err = repo.GetByID(context.Background(), 8)
	assert.True(t, models.HasCode(err, models.CodeInternal))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CountError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnError(assert.AnError)

	_, err := repo.Count(context.Background())
	assert.True(t, models.HasCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
