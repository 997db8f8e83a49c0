// Package domain holds the reference directory: descriptive metadata for
// users and printers. These rows are a lookup convenience seeded at startup;
// nothing enforces that a job record's names resolve here.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is descriptive metadata for a known office user.
type User struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	UserName   string       `gorm:"type:text;not null;uniqueIndex" json:"userName"`
	FullName   string       `gorm:"type:text" json:"fullName,omitempty"`
	Department string       `gorm:"type:text" json:"department,omitempty"`
	Email      string       `gorm:"type:text" json:"email,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Printer is descriptive metadata for a known printer.
type Printer struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	PrinterName string       `gorm:"type:text;not null;uniqueIndex" json:"printerName"`
	Location    string       `gorm:"type:text" json:"location,omitempty"`
	Model       string       `gorm:"type:text" json:"model,omitempty"`
	CostPerPage float64      `gorm:"not null;default:0" json:"costPerPage"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName sets the database table name.
func (Printer) TableName() string { return "printers" }

// Service exposes the read-only directory.
type Service interface {
	ListUsers(ctx context.Context) ([]User, error)
	ListPrinters(ctx context.Context) ([]Printer, error)
}
