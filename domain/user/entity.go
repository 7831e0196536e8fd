package user

import (
	"time"
)

// User represents a registered account. Email and username carry unique
// indexes; concurrent registrations racing on the same value are resolved
// by the database, not by the service layer.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Username     string `gorm:"uniqueIndex;not null;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims represents the identity decoded from a verified token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
