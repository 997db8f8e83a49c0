// Package domain contains the persistence model and contracts for print-job
// telemetry.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// StatusCompleted is the default status for reports that omit one. Status is
// deliberately an open string: agents on different platforms report whatever
// their spooler exposes.
const StatusCompleted = "completed"

// PrintJob is one reported print event. Records are append-only: created by
// ingestion, never updated, never deleted here. Duplicate external JobIDs are
// accepted as separate records; agents deliver at-least-once.
type PrintJob struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	JobID        string            `gorm:"type:text" json:"jobId,omitempty"`
	UserName     string            `gorm:"type:text;not null;index" json:"userName"`
	MachineName  string            `gorm:"type:text;not null" json:"machineName"`
	PrinterName  string            `gorm:"type:text;not null;index" json:"printerName"`
	DocumentName string            `gorm:"type:text" json:"documentName,omitempty"`
	PageCount    int               `gorm:"not null;default:0" json:"pageCount"`
	PrintTime    time.Time         `gorm:"not null;index" json:"printTime"`
	Status       string            `gorm:"type:text;not null;default:completed" json:"status"`
	FileSize     int64             `gorm:"not null;default:0" json:"fileSize"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName sets the database table name.
func (PrintJob) TableName() string { return "print_jobs" }
