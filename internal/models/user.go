// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// User is an account that can author posts, comment, and follow other authors.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254;not null;default:''" json:"-"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"size:150" json:"first_name,omitempty"`
	LastName  string    `gorm:"size:150" json:"last_name,omitempty"`
	CreatedAt time.Time `json:"date_joined"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// FullName returns "first last", falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
