package model

import "time"

type Kind string

const (
	KindBookingApproved  Kind = "booking.approved"
	KindBookingRejected  Kind = "booking.rejected"
	KindBookingCompleted Kind = "booking.completed"
	KindContactReceived  Kind = "contact.received"
)

// Booking carries what the booking mails render. ReceiptNumber is only set once a booking is approved.
type Booking struct {
	ReceiptNumber string  `json:"receipt_number,omitempty"`
	BookingID     string  `json:"booking_id"`
	ListingTitle  string  `json:"listing_title"`
	Location      string  `json:"location,omitempty"`
	GuestName     string  `json:"guest_name"`
	HostName      string  `json:"host_name,omitempty"`
	HostPhone     string  `json:"host_phone,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Nights        int     `json:"nights"`
	NightlyPrice  float64 `json:"nightly_price"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"payment_method"`
	IssuedAt      string  `json:"issued_at,omitempty"`
}

type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Message is one queued notification.
type Message struct {
	Kind        Kind      `json:"kind"`
	ReferenceID string    `json:"reference_id"`
	To          []string  `json:"to"`
	Booking     *Booking  `json:"booking,omitempty"`
	Contact     *Contact  `json:"contact,omitempty"`
	QueuedAt    time.Time `json:"queued_at"`
}

// Key partitions messages so every notification about one entity keeps its order.
func (m Message) Key() string {
	return string(m.Kind) + ":" + m.ReferenceID
}
