package tasks

import (
	"time"

	"gorm.io/gorm"
)

// Task represents a tracked task. Tasks carry no owner column: every
// authenticated user operates on the same pool.
type Task struct {
	ID          string         `gorm:"primarykey;size:36" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"size:1000" json:"description"`
	Completed   bool           `gorm:"not null;default:false" json:"completed"`
}

// TableName returns the table name for Task model.
func (Task) TableName() string {
	return "tasks"
}
