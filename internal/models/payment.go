package models

import "time"

const (
	PaymentStatusSucceeded = "succeeded"

	PaymentProviderMock = "mock"
)

// Payment is an append-only audit record; the single-successful-payment
// rule is enforced by the paymentStatus gate on Startup, not here.
type Payment struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	StartupID         uint      `json:"startup_id" gorm:"not null;index"`
	UserID            uint      `json:"user_id" gorm:"not null;index"`
	AmountRub         int64     `json:"amount_rub" gorm:"not null"`
	Status            string    `json:"status" gorm:"not null"`
	Provider          string    `json:"provider" gorm:"not null"`
	ProviderPaymentID string    `json:"provider_payment_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
