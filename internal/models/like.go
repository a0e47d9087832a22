package models

import "time"

// Like marks that a user liked a post. Presence is the toggle state;
// (post_id, username) is the composite primary key.
type Like struct {
	PostID    int64     `gorm:"primaryKey;autoIncrement:false;column:post_id" json:"post_id"`
	Username  string    `gorm:"primaryKey;type:varchar(64);column:username" json:"username"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
