package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/warunglabs/warungpos-backend/pkg/enums"
)

// Order is the committed result of a checkout. TotalPriceCents equals the sum
// of its lines' unit_price_cents * quantity at creation time; orders are not
// mutated by the POS after commit.
type Order struct {
	ID                uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName      string        `gorm:"column:customer_name;not null"`
	Gender            enums.Gender  `gorm:"column:gender;not null"`
	Email             *string       `gorm:"column:email"`
	Phone             *string       `gorm:"column:phone"`
	Birthday          *time.Time    `gorm:"column:birthday"`
	Note              *string       `gorm:"column:note"`
	TotalPriceCents   int           `gorm:"column:total_price_cents;not null"`
	PaymentMethodID   uuid.UUID     `gorm:"column:payment_method_id;type:uuid;not null"`
	PaymentMethod     PaymentMethod `gorm:"foreignKey:PaymentMethodID"`
	PaidAmountCents   int           `gorm:"column:paid_amount_cents;not null;default:0"`
	ChangeAmountCents int           `gorm:"column:change_amount_cents;not null;default:0"`
	Lines             []OrderLine   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
