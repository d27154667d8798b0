package database

import "scribe/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models,
// ordered so referenced tables are created first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	}
}
