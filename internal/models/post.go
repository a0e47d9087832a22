package models

import "time"

// Post represents a shared project post.
type Post struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username    string    `gorm:"type:varchar(64);not null;index;column:username" json:"username"`
	Title       string    `gorm:"type:varchar(256);not null;column:title" json:"title"`
	Description string    `gorm:"type:text;not null;default:'';column:description" json:"description"`
	VideoURL    string    `gorm:"type:varchar(1024);not null;default:'';column:video_url" json:"video_url"`
	GithubURL   string    `gorm:"type:varchar(1024);not null;default:'';column:github_url" json:"github_url"`
	CreatedAt   time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// AnnotatedPost is a post decorated with its owner's first name and
// engagement counters for list and detail views.
type AnnotatedPost struct {
	Post
	FirstName    string `json:"first_name"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	LikedByUser  bool   `json:"liked_by_user"`
}

// PostDetail is an annotated post with its comment thread attached,
// oldest comment first.
type PostDetail struct {
	AnnotatedPost
	Comments []AnnotatedComment `json:"comments"`
}
