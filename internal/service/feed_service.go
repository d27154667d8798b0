// Package service holds the feed queries and the write operations behind the HTTP handlers.
package service

import (
	"context"
	"log/slog"
	"time"

	"scribe/internal/cache"
	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/pagination"
	"scribe/internal/repository"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PostView is a post as rendered in feeds and on the detail page.
type PostView struct {
	models.Post
	Excerpt  string `json:"excerpt"`
	ImageURL string `json:"image_url,omitempty"`
}

// Page is one page of a feed.
type Page struct {
	Posts  []PostView        `json:"posts"`
	Window pagination.Window `json:"page"`
}

// GroupFeed is the group page context.
type GroupFeed struct {
	Group *models.Group `json:"group"`
	Page  *Page         `json:"page_obj"`
}

// ProfileFeed is the profile page context.
type ProfileFeed struct {
	Author     *models.User `json:"author"`
	AuthorName string       `json:"author_name"`
	Following  bool         `json:"following"`
	PostsCount int64        `json:"posts_count"`
	Page       *Page        `json:"page_obj"`
}

// PostDetail is the post page context.
type PostDetail struct {
	Post             PostView         `json:"post"`
	Comments         []models.Comment `json:"comments"`
	AuthorPostsCount int64            `json:"author_posts_count"`
}

// FeedOptions configures FeedService.
type FeedOptions struct {
	PerPage  int
	CacheTTL time.Duration
}

// ImageLinker maps a stored image path to its public URL.
type ImageLinker interface {
	URL(stored string) string
}

// FeedService answers the read side: the four feeds and the post page.
type FeedService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	comments repository.CommentRepository
	pages    cache.PageCache
	images   ImageLinker
	opts     FeedOptions
}

// NewFeedService wires the feed queries. pages may be nil to disable caching.
func NewFeedService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	comments repository.CommentRepository,
	pages cache.PageCache,
	images ImageLinker,
	opts FeedOptions,
) *FeedService {
	if opts.PerPage <= 0 {
		opts.PerPage = 10
	}
	return &FeedService{
		posts:    posts,
		groups:   groups,
		users:    users,
		follows:  follows,
		comments: comments,
		pages:    pages,
		images:   images,
		opts:     opts,
	}
}

func (s *FeedService) view(p models.Post) PostView {
	return PostView{Post: p, Excerpt: p.Excerpt(), ImageURL: s.images.URL(p.Image)}
}

func (s *FeedService) page(
	requested int,
	count func() (int64, error),
	list func(limit, offset int) ([]models.Post, error),
) (*Page, error) {
	total, err := count()
	if err != nil {
		return nil, err
	}
	w := pagination.Paginate(total, s.opts.PerPage, requested)
	posts, err := list(w.PerPage, w.Offset)
	if err != nil {
		return nil, err
	}
	return &Page{
		Posts:  lo.Map(posts, func(p models.Post, _ int) PostView { return s.view(p) }),
		Window: w,
	}, nil
}

// Global returns every post newest first.
func (s *FeedService) Global(ctx context.Context, requested int) (*Page, error) {
	observability.FeedRequests.WithLabelValues("global").Inc()
	return s.page(requested,
		func() (int64, error) { return s.posts.Count(ctx) },
		func(limit, offset int) ([]models.Post, error) { return s.posts.List(ctx, limit, offset) },
	)
}

// GlobalDocument returns the serialized global feed page, served from the
// page cache for CacheTTL after it is first built. Writes do not refresh it.
func (s *FeedService) GlobalDocument(ctx context.Context, requested int) ([]byte, error) {
	key := cache.IndexPageKey(requested)

	if s.pages != nil && s.opts.CacheTTL > 0 {
		cached, ok, err := s.pages.Get(ctx, key)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "page cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		if ok {
			return cached, nil
		}
	}

	page, err := s.Global(ctx, requested)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(page)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if s.pages != nil && s.opts.CacheTTL > 0 {
		if err := s.pages.Set(ctx, key, doc, s.opts.CacheTTL); err != nil {
			middleware.Logger.WarnContext(ctx, "page cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return doc, nil
}

// ClearCache drops every cached page.
func (s *FeedService) ClearCache(ctx context.Context) error {
	if s.pages == nil {
		return nil
	}
	return s.pages.Clear(ctx)
}

// Group returns the posts of the group with slug.
func (s *FeedService) Group(ctx context.Context, slug string, requested int) (*GroupFeed, error) {
	observability.FeedRequests.WithLabelValues("group").Inc()
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	page, err := s.page(requested,
		func() (int64, error) { return s.posts.CountByGroup(ctx, group.ID) },
		func(limit, offset int) ([]models.Post, error) { return s.posts.ListByGroup(ctx, group.ID, limit, offset) },
	)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: page}, nil
}

// Profile returns an author's posts. Following is only true for an
// authenticated requester other than the author who follows them.
func (s *FeedService) Profile(ctx context.Context, username string, requesterID uint, requested int) (*ProfileFeed, error) {
	observability.FeedRequests.WithLabelValues("profile").Inc()
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var total int64
	page, err := s.page(requested,
		func() (int64, error) {
			n, err := s.posts.CountByAuthor(ctx, author.ID)
			total = n
			return n, err
		},
		func(limit, offset int) ([]models.Post, error) { return s.posts.ListByAuthor(ctx, author.ID, limit, offset) },
	)
	if err != nil {
		return nil, err
	}

	following := false
	if requesterID != 0 && requesterID != author.ID {
		following, err = s.follows.Exists(ctx, requesterID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileFeed{
		Author:     author,
		AuthorName: author.FullName(),
		Following:  following,
		PostsCount: total,
		Page:       page,
	}, nil
}

// Following returns posts by the authors userID follows.
func (s *FeedService) Following(ctx context.Context, userID uint, requested int) (*Page, error) {
	observability.FeedRequests.WithLabelValues("following").Inc()
	span, ctx := observability.NewSpan(ctx, "feed.following", attribute.Int64("user.id", int64(userID)))
	defer span.End()

	page, err := s.page(requested,
		func() (int64, error) { return s.posts.CountFollowed(ctx, userID) },
		func(limit, offset int) ([]models.Post, error) { return s.posts.ListFollowed(ctx, userID, limit, offset) },
	)
	span.SetError(err)
	return page, err
}

// PostDetail returns a post with its comments, oldest first.
func (s *FeedService) PostDetail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: s.view(*post), Comments: comments, AuthorPostsCount: count}, nil
}
