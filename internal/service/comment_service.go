package service

import (
	"context"

	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/repository"
	"scribe/internal/validation"
)

// CommentService adds comments to posts.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService returns a CommentService.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// AddComment stores a comment by authorID on postID. The form is checked
// before the post, so blank text on a missing post is a validation error.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID uint, text string) (comment *models.Comment, err error) {
	defer func() { observability.RecordMutation("add_comment", err) }()

	form := validation.CommentForm{Text: text}
	form.Normalize()
	fields, err := validation.Struct(form)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment = &models.Comment{Text: form.Text, AuthorID: authorID, PostID: &postID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
