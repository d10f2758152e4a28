package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/warunglabs/warungpos-backend/pkg/enums"
)

// Notification is a fire-and-forget operator message (out-of-stock warnings,
// checkout confirmations) surfaced in the admin bell.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.NotificationKind `gorm:"column:kind;not null"`
	Message   string                 `gorm:"column:message;not null"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
