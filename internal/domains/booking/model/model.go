package model

import (
	"math"
	"strings"
	"time"

	"afristay/shared/model"
)

const (
	TableName        = "bookings"
	PaymentTableName = "payments"
	EntityName       = "booking"
	PaymentEntity    = "payment"

	ListingTableName = "listings"

	CachePrefix = "booking"

	FieldID            = "id"
	FieldListingID     = "listing_id"
	FieldUserID        = "user_id"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldTotalAmount   = "total_amount"
	FieldStatus        = "status"
	FieldPaymentMethod = "payment_method"
	FieldPaymentStatus = "payment_status"
	FieldBookingID     = "booking_id"

	// joined from listings
	FieldOwnerID = "owner_id"

	receiptPrefix = "RCP-"
	receiptLength = 8
)

type PaymentMethod string

const (
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID            string        `db:"id"`
	ListingID     string        `db:"listing_id"`
	UserID        string        `db:"user_id"`
	StartDate     time.Time     `db:"start_date"`
	EndDate       time.Time     `db:"end_date"`
	TotalAmount   float64       `db:"total_amount"`
	Status        Status        `db:"status"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	OwnerID       string        `db:"owner_id"      table:"listings"`
	ListingTitle  string        `db:"listing_title" table:"listings" column:"title"`
	Currency      string        `db:"currency"      table:"listings"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN listings ON listings.id = bookings.listing_id"
}

// Nights is the number of whole days between start and end date.
func (b Booking) Nights() int {
	return Nights(b.StartDate, b.EndDate)
}

// ReceiptNumber is RCP- followed by the first eight characters of the booking id, upper cased.
func (b Booking) ReceiptNumber() string {
	return ReceiptNumber(b.ID)
}

func Nights(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

func ReceiptNumber(id string) string {
	if len(id) > receiptLength {
		id = id[:receiptLength]
	}

	return receiptPrefix + strings.ToUpper(id)
}

type PaymentProvider string

const PaymentProviderInPerson PaymentProvider = "in_person"

type PaymentResult string

const PaymentResultSuccess PaymentResult = "success"

// Payment records money received for a booking.
type Payment struct {
	ID        string          `db:"id"`
	BookingID string          `db:"booking_id"`
	Amount    float64         `db:"amount"`
	Currency  string          `db:"currency"`
	Provider  PaymentProvider `db:"provider"`
	Status    PaymentResult   `db:"status"`
	model.Metadata
}
