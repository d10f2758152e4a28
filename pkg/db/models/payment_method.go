package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a settlement option offered at the register. Cash methods
// accept a tendered amount and produce change; non-cash methods settle exactly.
type PaymentMethod struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	IsCash    bool      `gorm:"column:is_cash;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
