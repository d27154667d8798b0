// Package repository implements the data access layer for the application.
package repository

import (
	"errors"

	"scribe/internal/models"

	"gorm.io/gorm"
)

// newestFirst is the ordering shared by every post listing.
const newestFirst = "posts.pub_date DESC, posts.id DESC"

// translate maps a lookup error to the AppError taxonomy.
func translate(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

func paged(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}
