package repository

import (
	"context"
	"log/slog"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts. Every List
// method orders newest first and has a Count twin for pagination.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListFollowed(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	CountFollowed(ctx context.Context, userID uint) (int64, error)
}

type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts", middleware.Logger)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, slog.Uint64("post_id", uint64(post.ID)), slog.Uint64("author_id", uint64(post.AuthorID)))
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "Post", id)
	}
	return &post, nil
}

// Update writes text, group and image. Author and pub date never change.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	res := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Omit(clause.Associations).
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "update")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	r.log.LogUpdate(ctx, slog.Uint64("post_id", uint64(post.ID)))
	return nil
}

// Delete removes the post and its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translate(err, "Post", id)
	}
	r.log.LogDelete(ctx, slog.Uint64("post_id", uint64(id)))
	return nil
}

func (r *postRepository) list(ctx context.Context, method string, scope func(*gorm.DB) *gorm.DB, limit, offset int) ([]models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, method, "posts")
	defer span.End()
	defer observability.TrackQuery("select", "posts")()

	var posts []models.Post
	// Qualified select keeps joined follow columns out of the scanned row.
	q := scope(r.db.WithContext(ctx).Model(&models.Post{})).
		Select("posts.*").
		Preload("Author").
		Preload("Group").
		Order(newestFirst)
	if err := paged(q, limit, offset).Find(&posts).Error; err != nil {
		span.RecordError(err)
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) count(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	if err := scope(r.db.WithContext(ctx).Model(&models.Post{})).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func allPosts(db *gorm.DB) *gorm.DB { return db }

func inGroup(groupID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.group_id = ?", groupID)
	}
}

func byAuthor(authorID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_id = ?", authorID)
	}
}

// followedBy selects posts whose author userID follows.
func followedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN follows ON follows.author_id = posts.author_id").
			Where("follows.user_id = ?", userID)
	}
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, "List", allPosts, limit, offset)
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, allPosts)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, "ListByGroup", inGroup(groupID), limit, offset)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return r.count(ctx, inGroup(groupID))
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, "ListByAuthor", byAuthor(authorID), limit, offset)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.count(ctx, byAuthor(authorID))
}

func (r *postRepository) ListFollowed(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, "ListFollowed", followedBy(userID), limit, offset)
}

func (r *postRepository) CountFollowed(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, followedBy(userID))
}
