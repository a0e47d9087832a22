package models

import "time"

// Comment represents a comment on a post.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PostID    int64     `gorm:"not null;index;column:post_id" json:"post_id"`
	Username  string    `gorm:"type:varchar(64);not null;column:username" json:"username"`
	Content   string    `gorm:"type:text;not null;column:content" json:"content"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// AnnotatedComment is a comment decorated with its author's first name.
type AnnotatedComment struct {
	Comment
	FirstName string `json:"first_name"`
}
