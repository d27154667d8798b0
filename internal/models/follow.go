package models

// Follow is a directed edge: UserID follows AuthorID.
// The pair is unique; a user following themself is not rejected here.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:unique_followers" json:"user_id"`
	User     User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint `gorm:"not null;uniqueIndex:unique_followers;index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
