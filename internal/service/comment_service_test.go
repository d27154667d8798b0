package service

import (
	"context"
	"testing"

	"scribe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	comments := &commentRepoStub{}
	posts := &postRepoStub{getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
		if id == 1 {
			return &models.Post{ID: 1}, nil
		}
		return nil, models.NewNotFoundError("Post", id)
	}}
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	c, err := svc.AddComment(ctx, 5, 1, "  Great post  ")
	require.NoError(t, err)
	assert.Equal(t, "Great post", c.Text)
	assert.Equal(t, uint(5), c.AuthorID)
	require.NotNil(t, c.PostID)
	assert.Equal(t, uint(1), *c.PostID)
	require.Len(t, comments.created, 1)

	_, err = svc.AddComment(ctx, 5, 1, "   ")
	assertFieldError(t, err, "text")

	_, err = svc.AddComment(ctx, 5, 404, "Hello?")
	assert.True(t, models.IsNotFound(err))

	// The form is checked first: blank text on a missing post is a validation error.
	_, err = svc.AddComment(ctx, 5, 404, "")
	assert.True(t, models.IsValidation(err))

	assert.Len(t, comments.created, 1)
}
