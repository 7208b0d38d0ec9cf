package model

import "time"

const (
	TableName  = "favorites"
	EntityName = "favorite"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldListingID = "listing_id"
)

type Favorite struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ListingID string    `db:"listing_id"`
	CreatedAt time.Time `db:"created_at"`
}
