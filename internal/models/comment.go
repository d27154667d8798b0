package models

import "time"

// Comment is a reply left on a post.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   *uint     `gorm:"index" json:"post_id"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;<-:create" json:"created"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}
