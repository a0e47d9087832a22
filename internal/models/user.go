package models

import "time"

// User represents a board member, keyed by their chosen handle.
type User struct {
	Username     string    `gorm:"primaryKey;type:varchar(64);column:username" json:"username"`
	FirstName    string    `gorm:"type:varchar(64);not null;column:first_name" json:"first_name"`
	PortfolioURL string    `gorm:"type:varchar(1024);not null;default:'';column:portfolio_url" json:"portfolio_url"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
