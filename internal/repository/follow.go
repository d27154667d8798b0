package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scribe/internal/database"
	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadyFollowing is returned by Create when the edge exists.
var ErrAlreadyFollowing = models.NewValidationError("already following this author")

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Create(ctx context.Context, userID, authorID uint) (*models.Follow, error)
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	Get(ctx context.Context, userID, authorID uint) (*models.Follow, error)
	Delete(ctx context.Context, userID, authorID uint) error
	// GetOrCreate returns the edge and whether this call inserted it.
	GetOrCreate(ctx context.Context, userID, authorID uint) (*models.Follow, bool, error)
}

type followRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db, log: observability.NewRepoLogger("follows", middleware.Logger)}
}

func edgeID(userID, authorID uint) string {
	return fmt.Sprintf("%d->%d", userID, authorID)
}

func (r *followRepository) Create(ctx context.Context, userID, authorID uint) (*models.Follow, error) {
	follow := &models.Follow{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyFollowing
		}
		r.log.LogError(ctx, err, "create")
		return nil, models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, slog.Uint64("user_id", uint64(userID)), slog.Uint64("author_id", uint64(authorID)))
	return follow, nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *followRepository) Get(ctx context.Context, userID, authorID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error
	if err != nil {
		return nil, translate(err, "Follow", edgeID(userID, authorID))
	}
	return &follow, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", edgeID(userID, authorID))
	}
	r.log.LogDelete(ctx, slog.Uint64("user_id", uint64(userID)), slog.Uint64("author_id", uint64(authorID)))
	return nil
}

// GetOrCreate tolerates a concurrent insert of the same edge by re-reading it.
func (r *followRepository) GetOrCreate(ctx context.Context, userID, authorID uint) (*models.Follow, bool, error) {
	existing, err := r.Get(ctx, userID, authorID)
	if err == nil {
		return existing, false, nil
	}
	if !models.IsNotFound(err) {
		return nil, false, err
	}

	created, err := r.Create(ctx, userID, authorID)
	if errors.Is(err, ErrAlreadyFollowing) {
		existing, err = r.Get(ctx, userID, authorID)
		return existing, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}
