package bookings

// CancellationResponse reports the outcome of a cancellation
type CancellationResponse struct {
	BookingID    string  `json:"booking_id"`
	Status       Status  `json:"status"`
	RefundAmount float64 `json:"refund_amount"`
	PolicyText   string  `json:"policy_text"`
}

// BookingListResponse wraps a paginated booking list
type BookingListResponse struct {
	Bookings []Booking `json:"bookings"`
	Count    int       `json:"count"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}
