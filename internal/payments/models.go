package payments

import (
	"time"

	"github.com/google/uuid"
)

// Method is the payment method enum
type Method string

const (
	MethodCreditCard   Method = "CREDIT_CARD"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodKakaoPay     Method = "KAKAO_PAY"
	MethodNaverPay     Method = "NAVER_PAY"
	MethodPaypal       Method = "PAYPAL"
)

// Status is the payment lifecycle enum
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusProcessing        Status = "PROCESSING"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
	StatusCancelled         Status = "CANCELLED"
	StatusRefunded          Status = "REFUNDED"
	StatusPartiallyRefunded Status = "PARTIALLY_REFUNDED"
)

// Payment is the payment record attached to a booking. Refund fields stay
// empty until a refund has been executed against a completed payment.
type Payment struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID     uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	Amount        float64   `json:"amount" gorm:"not null"`
	Currency      string    `json:"currency" gorm:"not null;default:'KRW'"`
	Status        Status    `json:"status" gorm:"not null;default:'PENDING'"`
	Method        Method    `json:"method" gorm:"not null"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ReceiptURL    string     `json:"receipt_url,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`

	// Refund record
	RefundID            string     `json:"refund_id,omitempty"`
	RefundAmount        float64    `json:"refund_amount,omitempty"`
	RefundReason        string     `json:"refund_reason,omitempty"`
	RefundedAt          *time.Time `json:"refunded_at,omitempty"`
	RefundTransactionID string     `json:"refund_transaction_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidMethod(m string) bool {
	switch Method(m) {
	case MethodCreditCard, MethodBankTransfer, MethodKakaoPay, MethodNaverPay, MethodPaypal:
		return true
	default:
		return false
	}
}

// IsRefundable reports whether a refund may be executed against this payment
func (p *Payment) IsRefundable() bool {
	return p.Status == StatusCompleted
}

// MarkCompleted records a successful charge
func (p *Payment) MarkCompleted(transactionID string, paidAt time.Time) {
	p.Status = StatusCompleted
	p.TransactionID = transactionID
	p.PaidAt = &paidAt
	p.UpdatedAt = paidAt
}

// MarkFailed records a failed charge with the gateway reason
func (p *Payment) MarkFailed(reason string, at time.Time) {
	p.Status = StatusFailed
	p.FailureReason = reason
	p.UpdatedAt = at
}

// MarkRefunded records a refund. A refund of the full amount moves the
// payment to REFUNDED, anything less to PARTIALLY_REFUNDED.
func (p *Payment) MarkRefunded(refundID, refundTransactionID, reason string, amount float64, at time.Time) {
	if amount >= p.Amount {
		p.Status = StatusRefunded
	} else {
		p.Status = StatusPartiallyRefunded
	}
	p.RefundID = refundID
	p.RefundTransactionID = refundTransactionID
	p.RefundReason = reason
	p.RefundAmount = amount
	p.RefundedAt = &at
	p.UpdatedAt = at
}
