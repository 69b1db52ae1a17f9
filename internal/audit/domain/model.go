package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ActorType represents who triggered an action.
type ActorType string

const (
	ActorTypeSystem  ActorType = "system"
	ActorTypeWebhook ActorType = "webhook"
)

// AuditLog captures an immutable record of a connector action.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	TenantID   *string           `gorm:"column:tenant_id;index"`
	ActorType  string            `gorm:"type:text;not null"`
	Action     string            `gorm:"type:text;not null;index"`
	TargetType string            `gorm:"type:text;not null"`
	TargetID   *string           `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:text;not null;default:'{}'"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }
