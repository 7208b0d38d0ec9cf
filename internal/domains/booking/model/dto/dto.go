package dto

import (
	"strings"
	"time"

	"afristay/internal/domains/booking/model"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	gModel "afristay/shared/model"
	"afristay/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID     string `json:"listing_id"     validate:"required,uuid"`
	StartDate     string `json:"start_date"     validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date"       validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=mobile_money card bank_transfer cash"`
}

// Dates parses the stay and rejects ranges where the end is not after the start.
func (c CreateBookingRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DayDateFormat, c.StartDate)
	if err != nil {
		return start, end, failure.BadRequestFromString("start_date must be YYYY-MM-DD") // nolint:wrapcheck
	}

	end, err = time.Parse(constant.DayDateFormat, c.EndDate)
	if err != nil {
		return start, end, failure.BadRequestFromString("end_date must be YYYY-MM-DD") // nolint:wrapcheck
	}

	if !end.After(start) {
		return start, end, failure.BadRequestFromString("end_date must be after start_date") // nolint:wrapcheck
	}

	return start, end, nil
}

// ToModel prices the stay at nightly price times nights. The total is never recomputed.
func (c CreateBookingRequest) ToModel(user string, start, end time.Time, nightlyPrice float64) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:            uuid.NewString(),
		ListingID:     c.ListingID,
		UserID:        user,
		StartDate:     start,
		EndDate:       end,
		TotalAmount:   float64(model.Nights(start, end)) * nightlyPrice,
		Status:        model.StatusPending,
		PaymentMethod: model.PaymentMethod(c.PaymentMethod),
		PaymentStatus: model.PaymentStatusUnpaid,
		Metadata:      gModel.NewMetadata(user, now),
	}
}

func NewPayment(booking model.Booking, actor string) model.Payment {
	now := timezone.Now()

	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		Currency:  booking.Currency,
		Provider:  model.PaymentProviderInPerson,
		Status:    model.PaymentResultSuccess,
		Metadata:  gModel.NewMetadata(actor, now),
	}
}

type BookingResponse struct {
	ID            string  `json:"id"`
	ListingID     string  `json:"listing_id"`
	ListingTitle  string  `json:"listing_title"`
	OwnerID       string  `json:"owner_id"`
	UserID        string  `json:"user_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Nights        int     `json:"nights"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.ListingID = m.ListingID
	r.ListingTitle = m.ListingTitle
	r.OwnerID = m.OwnerID
	r.UserID = m.UserID
	r.StartDate = m.StartDate.Format(constant.DayDateFormat)
	r.EndDate = m.EndDate.Format(constant.DayDateFormat)
	r.Nights = m.Nights()
	r.TotalAmount = m.TotalAmount
	r.Currency = m.Currency
	r.Status = string(m.Status)
	r.PaymentMethod = string(m.PaymentMethod)
	r.PaymentStatus = string(m.PaymentStatus)
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type StatusResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

type ContactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type ReceiptResponse struct {
	ReceiptNumber string          `json:"receipt_number"`
	BookingID     string          `json:"booking_id"`
	ListingID     string          `json:"listing_id"`
	ListingTitle  string          `json:"listing_title"`
	Location      string          `json:"location"`
	Guest         ContactResponse `json:"guest"`
	Host          ContactResponse `json:"host"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Nights        int             `json:"nights"`
	NightlyPrice  float64         `json:"nightly_price"`
	TotalAmount   float64         `json:"total_amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	Status        string          `json:"status"`
	IssuedAt      string          `json:"issued_at"`
}

func (r *ReceiptResponse) FromModel(m model.Booking) {
	r.ReceiptNumber = m.ReceiptNumber()
	r.BookingID = m.ID
	r.ListingID = m.ListingID
	r.ListingTitle = m.ListingTitle
	r.StartDate = m.StartDate.Format(constant.DayDateFormat)
	r.EndDate = m.EndDate.Format(constant.DayDateFormat)
	r.Nights = m.Nights()
	r.TotalAmount = m.TotalAmount
	r.Currency = m.Currency
	r.PaymentMethod = string(m.PaymentMethod)
	r.PaymentStatus = string(m.PaymentStatus)
	r.Status = string(m.Status)
	r.IssuedAt = timezone.Format(m.ModifiedAt, constant.DayDateFormat)

	if r.Nights > 0 {
		r.NightlyPrice = m.TotalAmount / float64(r.Nights)
	}
}

type BookingQuery struct {
	Status    string
	ListingID string
	UserID    string
	OwnerID   string
}

func (q BookingQuery) ToFilterGroup() gDto.FilterGroup {
	filter := shared.FilterAnd()

	if q.Status != "" {
		statuses := strings.Split(q.Status, ",")
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    statuses,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	if q.ListingID != "" {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldListingID, model.TableName, q.ListingID))
	}

	if q.UserID != "" {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldUserID, model.TableName, q.UserID))
	}

	if q.OwnerID != "" {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldOwnerID, model.ListingTableName, q.OwnerID))
	}

	return filter
}
