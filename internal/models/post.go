package models

import (
	"time"
)

// UploadDir is the media sub-directory post images are stored under.
const UploadDir = "posts/"

// Post is a published text entry. Posts are always listed newest first.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"column:pub_date;autoCreateTime;index;<-:create" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
	Image    string    `gorm:"size:255;not null;default:''" json:"image,omitempty"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// Excerpt returns the first 15 characters of the text.
func (p *Post) Excerpt() string {
	r := []rune(p.Text)
	if len(r) > 15 {
		return string(r[:15])
	}
	return p.Text
}

// IsOwnedBy reports whether userID authored the post.
func (p *Post) IsOwnedBy(userID uint) bool {
	return p.AuthorID == userID
}
