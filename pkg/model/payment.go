package model

import "time"

// Payment is a product purchase. Amount is in kopecks.
type Payment struct {
	ID          int           `json:"id"`
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	Source      string        `json:"source"`
	Product     string        `json:"product"`
	Amount      int64         `json:"amount"`
	PromoCodeID *int          `json:"promoCodeId,omitempty"`
	PromoCode   *PromoCode    `json:"promoCode,omitempty"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Rubles returns the amount in rubles.
func (p Payment) Rubles() float64 {
	return float64(p.Amount) / 100
}

// PromoCode is a discount applied to a payment.
type PromoCode struct {
	ID              int      `json:"id"`
	Code            string   `json:"code"`
	DiscountPercent *float64 `json:"discountPercent"`
	DiscountAmount  *int64   `json:"discountAmount"`
}

// CreatePayment is the body of POST /payments.
type CreatePayment struct {
	FullName    string        `json:"fullName" validate:"required,max=255"`
	Email       string        `json:"email" validate:"required,email"`
	Source      string        `json:"source" validate:"required"`
	Product     string        `json:"product" validate:"required"`
	Amount      int64         `json:"amount" validate:"gt=0"`
	PromoCodeID *int          `json:"promoCodeId,omitempty"`
	Status      PaymentStatus `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

// PaymentList is one page of payments.
type PaymentList struct {
	Payments []Payment `json:"payments"`
	Pagination
}

// PaymentStats summarizes payments in a date range. TotalAmount is in
// kopecks.
type PaymentStats struct {
	Pending     int   `json:"pending"`
	Completed   int   `json:"completed"`
	TotalAmount int64 `json:"totalAmount"`
}

// TotalRubles returns TotalAmount in rubles.
func (s PaymentStats) TotalRubles() float64 {
	return float64(s.TotalAmount) / 100
}
