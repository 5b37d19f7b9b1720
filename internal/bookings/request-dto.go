package bookings

// CreateBookingRequest is the payload for creating a booking against a slot
type CreateBookingRequest struct {
	TimeSlotID    string  `json:"time_slot_id" binding:"required,uuid"`
	Type          string  `json:"type" binding:"required,oneof=WORKSHOP SPACE"`
	ItemID        string  `json:"item_id" binding:"omitempty,uuid"`
	TotalAmount   float64 `json:"total_amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=CREDIT_CARD BANK_TRANSFER KAKAO_PAY NAVER_PAY PAYPAL"`
	Notes         string  `json:"notes" binding:"omitempty,max=500"`
}

// CancelBookingRequest carries the mandatory cancellation reason
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// UpdateStatusRequest is the admin payload for a direct status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED NO_SHOW REFUNDED"`
}
