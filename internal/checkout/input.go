package checkout

import (
	"time"

	"github.com/google/uuid"
)

// CustomerInfo is the buyer data captured at the register.
type CustomerInfo struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Gender   string     `json:"gender" validate:"required,oneof=male female"`
	Email    *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string    `json:"phone,omitempty" validate:"omitempty,max=32"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Note     *string    `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// Input is the full checkout payload.
type Input struct {
	Customer        CustomerInfo `json:"customer"`
	PaymentMethodID uuid.UUID    `json:"payment_method_id" validate:"required"`
	PaidAmountCents int          `json:"paid_amount_cents" validate:"min=0"`
}
