// Package auditrepo appends order history lines to postgres.
package auditrepo

import (
	"context"
	"time"

	"clearance/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEntryDTO represents the database structure for persisting history lines.
type AuditEntryDTO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	OrderID int64     `gorm:"index"`
	ActorID uuid.UUID `gorm:"type:uuid"`
	Action  string
	Message string `gorm:"type:text"`
	Notes   string `gorm:"type:text"`
	At      time.Time
}

// TableName specifies the database table name for audit entries.
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

// GormAuditLog implements ports.AuditLog using GORM.
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GORM audit log.
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Append writes one history line. Called after the transition committed.
func (l *GormAuditLog) Append(ctx context.Context, entry ports.AuditEntry) error {
	dto := AuditEntryDTO{
		OrderID: entry.OrderID,
		ActorID: entry.ActorID.Bytes(),
		Action:  entry.Action,
		Message: entry.Message,
		Notes:   entry.Notes,
		At:      entry.At,
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}
