// Package models contains the database model definitions.
// These models map directly to the SQLite database tables.
package models

import (
	"time"
)

// Session represents one hotspot lifecycle instance, from start request
// to teardown. Rows are history only; the live controller keeps its own
// in-memory state and writes here on transitions.
// Table: sessions
type Session struct {
	ID        string     `gorm:"column:id;primaryKey"`
	SSID      string     `gorm:"column:ssid"`
	Interface string     `gorm:"column:interface"`
	Channel   int        `gorm:"column:channel"`
	State     string     `gorm:"column:state;index"`
	PID       int        `gorm:"column:pid"`
	StartedAt time.Time  `gorm:"column:started_at;index"`
	StoppedAt *time.Time `gorm:"column:stopped_at"`
	ExitCode  *int       `gorm:"column:exit_code"`
	Error     *string    `gorm:"column:error"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Session) TableName() string { return "sessions" }
