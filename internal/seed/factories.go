// Package seed creates demo data for development databases. The helpers
// are not meant for production use.
package seed

import (
	"fmt"
	"time"

	"scribe/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them.
type Factory struct {
	db      *gorm.DB
	faker   *gofakeit.Faker
	maxDays int
}

// NewFactory returns a Factory writing to db. Publication dates are spread
// over the last maxDays days.
func NewFactory(db *gorm.DB, seed int64, maxDays int) *Factory {
	if maxDays <= 0 {
		maxDays = 90
	}
	return &Factory{db: db, faker: gofakeit.New(seed), maxDays: maxDays}
}

// BuildUser returns an unsaved user with a unique-looking username.
func (f *Factory) BuildUser(passwordHash string) *models.User {
	return &models.User{
		Username:  fmt.Sprintf("%s%d", f.faker.Username(), f.faker.Number(100, 999)),
		Email:     f.faker.Email(),
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
		Password:  passwordHash,
	}
}

// BuildPost returns an unsaved post by author, in group when group is not nil.
func (f *Factory) BuildPost(author *models.User, group *models.Group) *models.Post {
	post := &models.Post{
		Text:     f.faker.Paragraph(1, 3, 12, "\n"),
		AuthorID: author.ID,
		PubDate:  f.pastTime(),
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	return post
}

func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.faker.Number(0, f.maxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}

// CreateUser persists a generated user. Overrides run before the insert.
func (f *Factory) CreateUser(passwordHash string, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(passwordHash)
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePostsBatch persists posts in one statement.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Omit(clause.Associations).CreateInBatches(posts, 100).Error
}

// CreateComment persists a short comment by author on post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   &post.ID,
		AuthorID: author.ID,
		Text:     f.faker.Sentence(8),
	}
	if err := f.db.Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFollow persists user following author.
func (f *Factory) CreateFollow(user, author *models.User) error {
	return f.db.Omit(clause.Associations).Create(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error
}

// pick returns a random element of items, which must not be empty.
func pick[T any](faker *gofakeit.Faker, items []T) T {
	return items[faker.Number(0, len(items)-1)]
}
