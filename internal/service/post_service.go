package service

import (
	"context"
	"errors"

	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/repository"
	"scribe/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

const invalidGroupChoice = "Select a valid choice. That choice is not one of the available choices."

// Upload is an image file submitted with a post.
type Upload struct {
	Filename string
	Data     []byte
}

// ImageStore validates and persists post images.
type ImageStore interface {
	Validate(data []byte) (string, error)
	Save(filename string, data []byte) (string, error)
	Delete(stored string) error
}

// PostInput is the submitted post form.
type PostInput struct {
	Text       string
	GroupID    *uint
	Image      *Upload
	ClearImage bool
}

// PostService creates and edits posts.
type PostService struct {
	posts  repository.PostRepository
	groups repository.GroupRepository
	images ImageStore
}

// NewPostService returns a PostService.
func NewPostService(posts repository.PostRepository, groups repository.GroupRepository, images ImageStore) *PostService {
	return &PostService{posts: posts, groups: groups, images: images}
}

// GroupChoices lists the groups a post can be assigned to.
func (s *PostService) GroupChoices(ctx context.Context) ([]models.Group, error) {
	return s.groups.List(ctx)
}

// GetPost returns a post by ID.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, postID)
}

// validate normalizes in and collects field errors from the text, the group and the image.
func (s *PostService) validate(ctx context.Context, in *PostInput) error {
	form := validation.PostForm{Text: in.Text, GroupID: in.GroupID}
	form.Normalize()
	in.Text = form.Text

	fields, err := validation.Struct(form)
	if err != nil {
		return models.NewInternalError(err)
	}
	if fields == nil {
		fields = validation.FieldErrors{}
	}

	if in.GroupID != nil {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			if !models.IsNotFound(err) {
				return err
			}
			fields["group"] = invalidGroupChoice
		}
	}

	if in.Image != nil {
		if _, err := s.images.Validate(in.Image.Data); err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Fields != nil {
				for k, v := range appErr.Fields {
					fields[k] = v
				}
			} else {
				return err
			}
		}
	}

	if len(fields) > 0 {
		return models.NewFieldValidationError(fields)
	}
	return nil
}

// CreatePost publishes a post authored by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in PostInput) (post *models.Post, err error) {
	span, ctx := observability.NewSpan(ctx, "post.create", attribute.Int64("user.id", int64(authorID)))
	defer span.End()
	defer func() {
		span.SetError(err)
		observability.RecordMutation("create_post", err)
	}()

	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	post = &models.Post{Text: in.Text, AuthorID: authorID, GroupID: in.GroupID}
	if in.Image != nil {
		stored, err := s.images.Save(in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, err
		}
		post.Image = stored
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if post.Image != "" {
			_ = s.images.Delete(post.Image)
		}
		return nil, err
	}
	return post, nil
}

// EditPost updates a post. A requester other than the author gets a
// Forbidden error and nothing is written.
func (s *PostService) EditPost(ctx context.Context, requesterID, postID uint, in PostInput) (post *models.Post, err error) {
	span, ctx := observability.NewSpan(ctx, "post.edit", attribute.Int64("post.id", int64(postID)))
	defer span.End()
	defer func() {
		span.SetError(err)
		observability.RecordMutation("edit_post", err)
	}()

	post, err = s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(requesterID) {
		return nil, models.NewForbiddenError("only the author can edit this post")
	}

	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	previous := post.Image
	var saved string
	post.Text = in.Text
	post.GroupID = in.GroupID
	post.Group = nil
	switch {
	case in.Image != nil:
		saved, err = s.images.Save(in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, err
		}
		post.Image = saved
	case in.ClearImage:
		post.Image = ""
	}

	if err := s.posts.Update(ctx, post); err != nil {
		if saved != "" {
			_ = s.images.Delete(saved)
		}
		return nil, err
	}
	if previous != "" && previous != post.Image {
		_ = s.images.Delete(previous)
	}
	return post, nil
}
