// Package testutil provides shared databases and fixtures for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"scribe/internal/database"
	"scribe/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewTestDB opens a private in-memory SQLite database with every model migrated.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	// Named shared-cache databases keep parallel tests isolated from each other.
	dsn := fmt.Sprintf("file:scribe_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "!"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateGroup inserts a group.
func CreateGroup(t testing.TB, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: title, Slug: slug, Description: "Test description"}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePost inserts a post by author, optionally in group.
func CreatePost(t testing.TB, db *gorm.DB, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	p := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
	return p
}

// CreatePosts inserts n posts with strictly increasing pub dates, oldest first.
func CreatePosts(t testing.TB, db *gorm.DB, author *models.User, group *models.Group, n int) []*models.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Post{
			Text:     fmt.Sprintf("Post number %d", i+1),
			AuthorID: author.ID,
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
		posts = append(posts, p)
	}
	return posts
}

// CreateComment inserts a comment on post.
func CreateComment(t testing.TB, db *gorm.DB, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{Text: text, AuthorID: author.ID, PostID: &post.ID}
	require.NoError(t, db.Omit("Author", "Post").Create(c).Error)
	return c
}

// CreateFollow inserts a follow edge user -> author.
func CreateFollow(t testing.TB, db *gorm.DB, user, author *models.User) *models.Follow {
	t.Helper()
	f := &models.Follow{UserID: user.ID, AuthorID: author.ID}
	require.NoError(t, db.Omit("User", "Author").Create(f).Error)
	return f
}
