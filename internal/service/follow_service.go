package service

import (
	"context"

	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/repository"
)

// FollowService manages follow edges between users.
type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

// NewFollowService returns a FollowService.
func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow makes follower follow the user named authorUsername. Following
// yourself does nothing, and an existing edge is left as is. It reports
// whether a new edge was created.
func (s *FollowService) Follow(ctx context.Context, follower *models.User, authorUsername string) (created bool, err error) {
	defer func() { observability.RecordMutation("follow", err) }()

	if follower.Username == authorUsername {
		return false, nil
	}
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return false, err
	}
	_, created, err = s.follows.GetOrCreate(ctx, follower.ID, author.ID)
	return created, err
}

// Unfollow removes the edge follower -> authorUsername. A missing author or
// edge is NotFound.
func (s *FollowService) Unfollow(ctx context.Context, follower *models.User, authorUsername string) (err error) {
	defer func() { observability.RecordMutation("unfollow", err) }()

	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		if models.IsNotFound(err) {
			return models.NewNotFoundError("Follow", authorUsername)
		}
		return err
	}
	return s.follows.Delete(ctx, follower.ID, author.ID)
}
