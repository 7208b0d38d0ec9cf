package model

import "afristay/shared/model"

const (
	TableName      = "listings"
	ImageTableName = "listing_images"
	VideoTableName = "listing_videos"
	EntityName     = "listing"
	ImageEntity    = "listing_image"
	VideoEntity    = "listing_video"

	// CachePrefix covers every cached listing read so other domains can drop them after
	// changing availability.
	CachePrefix = "listing"

	FieldID           = "id"
	FieldOwnerID      = "owner_id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldCurrency     = "currency"
	FieldCategory     = "category"
	FieldStatus       = "status"
	FieldAvailability = "availability_status"
	FieldAddress      = "address"
	FieldProvinceID   = "province_id"
	FieldDistrictID   = "district_id"
	FieldSectorID     = "sector_id"

	FieldListingID = "listing_id"
	FieldURL       = "url"
)

type Category string

const (
	CategoryRealEstate Category = "real_estate"
	CategoryVehicle    Category = "vehicle"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilityBooked      Availability = "booked"
)

// Toggle flips between available and unavailable. Booked has no manual counterpart.
func (a Availability) Toggle() (Availability, bool) {
	switch a {
	case AvailabilityAvailable:
		return AvailabilityUnavailable, true
	case AvailabilityUnavailable:
		return AvailabilityAvailable, true
	default:
		return a, false
	}
}

type Listing struct {
	ID           string       `db:"id"`
	OwnerID      string       `db:"owner_id"`
	Title        string       `db:"title"`
	Description  string       `db:"description"`
	Price        float64      `db:"price"`
	Currency     string       `db:"currency"`
	Category     Category     `db:"category"`
	Status       Status       `db:"status"`
	Availability Availability `db:"availability_status"`
	Address      string       `db:"address"`
	ProvinceID   *int64       `db:"province_id"`
	DistrictID   *int64       `db:"district_id"`
	SectorID     *int64       `db:"sector_id"`
	model.Metadata
}

func (l Listing) OwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}

func (l Listing) Bookable() bool {
	return l.Status == StatusApproved && l.Availability == AvailabilityAvailable
}

// Media is a stored image or video URL attached to a listing.
type Media struct {
	ID        string `db:"id"`
	ListingID string `db:"listing_id"`
	URL       string `db:"url"`
	model.Metadata
}
