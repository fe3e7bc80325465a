package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

// Logger persists audit events to audit_logs and reads them back.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Log writes one event. Metadata is stored as JSON; a value that cannot
// be encoded is an error rather than a silently empty column.
func (l *Logger) Log(ctx context.Context, action, entity, entityID string, metadata any) error {
	row := models.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}

	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encode audit metadata: %w", err)
		}
		row.Metadata = string(b)
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Filter narrows List. Zero values are ignored; To is exclusive.
type Filter struct {
	Action   string
	Entity   string
	EntityID string
	From     time.Time
	To       time.Time
	Page     int
	Limit    int
}

// List returns the newest events first with the total matching count.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, total, nil
}
