package model

import (
	"time"

	"afristay/shared/model"
)

const (
	TableName        = "promotions"
	ListingTableName = "listings"
	EntityName       = "promotion"

	FieldID              = "id"
	FieldListingID       = "listing_id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldDiscountPercent = "discount_percent"
	FieldBannerURL       = "banner_url"
	FieldStartsAt        = "starts_at"
	FieldEndsAt          = "ends_at"
	FieldActive          = "active"
	FieldOwnerID         = "owner_id"
)

type Promotion struct {
	ID              string    `db:"id"`
	ListingID       string    `db:"listing_id"`
	Title           string    `db:"title"`
	Description     *string   `db:"description"`
	DiscountPercent float64   `db:"discount_percent"`
	BannerURL       *string   `db:"banner_url"`
	StartsAt        time.Time `db:"starts_at"`
	EndsAt          time.Time `db:"ends_at"`
	Active          bool      `db:"active"`
	OwnerID         string    `db:"owner_id"      table:"listings"`
	ListingTitle    string    `db:"listing_title" table:"listings" column:"title"`
	model.Metadata
}

func (Promotion) GetJoinQuery() string {
	return "JOIN listings ON listings.id = promotions.listing_id"
}

// Running reports whether the promotion applies at t.
func (p Promotion) Running(t time.Time) bool {
	return p.Active && !t.Before(p.StartsAt) && !t.After(p.EndsAt)
}
