package model

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:25;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Tasks []Task `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:100;index;not null" json:"title"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Frequency   string    `gorm:"size:50" json:"frequency,omitempty"`
	Reminders   []string  `gorm:"serializer:json" json:"reminders,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Logs []TaskLog `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TaskLog records one completion of a task on one calendar day.
// The (task_id, date) pair is unique: a task is completed at most
// once per day.
type TaskLog struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	TaskID uint      `gorm:"uniqueIndex:uq_task_logs_task_date;not null" json:"task_id"`
	Date   time.Time `gorm:"uniqueIndex:uq_task_logs_task_date;not null" json:"date"`
	Status bool      `gorm:"not null;default:true" json:"status"`
}

// Day truncates t to its calendar day in UTC. Every TaskLog.Date
// goes through this before it reaches the database so the unique
// index compares whole days, never timestamps.
func Day(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}
