package dto

import (
	"afristay/internal/domains/favorite/model"
	"afristay/shared/timezone"

	"github.com/google/uuid"
)

type SyncRequest struct {
	ListingIDs []string `json:"listing_ids" validate:"max=200,dive,uuid"`
}

type ToggleResponse struct {
	ListingID string `json:"listing_id"`
	Saved     bool   `json:"saved"`
}

type FavoritesResponse struct {
	ListingIDs []string `json:"listing_ids"`
}

func (r *FavoritesResponse) FromModels(models []model.Favorite) {
	r.ListingIDs = make([]string, len(models))
	for i, m := range models {
		r.ListingIDs[i] = m.ListingID
	}
}

// SyncResponse tells the client its pending list has been merged and can be cleared.
type SyncResponse struct {
	ListingIDs   []string `json:"listing_ids"`
	ClearPending bool     `json:"clear_pending"`
}

func NewFavorite(userID, listingID string) model.Favorite {
	return model.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: timezone.Now(),
	}
}
