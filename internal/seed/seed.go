package seed

import (
	"context"
	"fmt"
	"log/slog"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/service"

	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account logs in with.
const DefaultPassword = "scribe-demo-pass"

// Options controls how much data Run creates.
type Options struct {
	NumUsers       int
	NumPosts       int
	NumComments    int
	FollowsPerUser int
	// GroupedRatio is the share of posts placed in a group, 0..1.
	GroupedRatio float64
	ShouldClean  bool
	MaxDays      int
	// RandSeed makes the generated data reproducible when non-zero.
	RandSeed int64
	// HashCost overrides the bcrypt cost; zero uses bcrypt.DefaultCost.
	HashCost int
}

// Summary counts what Run created.
type Summary struct {
	Groups   int
	Users    int
	Posts    int
	Comments int
	Follows  int
}

// Seeder populates a database with groups, users and their activity.
type Seeder struct {
	db       *gorm.DB
	accounts *service.AccountService
	groups   []GroupFixture
}

// NewSeeder returns a Seeder using the bundled group fixtures.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	groups, err := DefaultGroups()
	if err != nil {
		return nil, err
	}
	return &Seeder{
		db:       db,
		accounts: service.NewAccountService(repository.NewUserRepository(db)),
		groups:   groups,
	}, nil
}

// WithGroups replaces the group fixtures.
func (s *Seeder) WithGroups(groups []GroupFixture) *Seeder {
	s.groups = groups
	return s
}

// ClearAll removes every row the seeder can create, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Comment{}, &models.Follow{}, &models.Post{}, &models.Group{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds the database according to opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	log := middleware.Logger.With(slog.String("component", "seed"))

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	db := s.db.WithContext(ctx)
	factory := NewFactory(db, opts.RandSeed, opts.MaxDays)
	summary := &Summary{}

	groups, err := Groups(db, s.groups)
	if err != nil {
		return nil, err
	}
	summary.Groups = len(groups)
	log.Info("groups ready", slog.Int("count", len(groups)))

	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := s.accounts.WithHashCost(cost).HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for range opts.NumUsers {
		user, err := factory.CreateUser(hash)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	summary.Users = len(users)
	log.Info("users created", slog.Int("count", len(users)))

	if len(users) == 0 {
		return summary, nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for range opts.NumPosts {
		var group *models.Group
		if len(groups) > 0 && factory.faker.Float64Range(0, 1) < opts.GroupedRatio {
			group = &groups[factory.faker.Number(0, len(groups)-1)]
		}
		posts = append(posts, factory.BuildPost(pick(factory.faker, users), group))
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	summary.Posts = len(posts)
	log.Info("posts created", slog.Int("count", len(posts)))

	if len(posts) > 0 {
		for range opts.NumComments {
			if _, err := factory.CreateComment(pick(factory.faker, users), pick(factory.faker, posts)); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
			summary.Comments++
		}
	}

	for _, user := range users {
		others := lo.Without(users, user)
		for _, author := range lo.Samples(others, opts.FollowsPerUser) {
			if err := factory.CreateFollow(user, author); err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
			summary.Follows++
		}
	}
	log.Info("activity created", slog.Int("comments", summary.Comments), slog.Int("follows", summary.Follows))

	return summary, nil
}
