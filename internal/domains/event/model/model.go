package model

import (
	"time"

	"afristay/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldEventDate   = "event_date"
	FieldLocation    = "location"
	FieldProvinceID  = "province_id"
	FieldDistrictID  = "district_id"
	FieldSectorID    = "sector_id"
	FieldBannerURL   = "banner_url"
)

type Event struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	EventDate   time.Time `db:"event_date"`
	// Location is the "sector, district, province" text resolved when the event is created.
	Location   string  `db:"location"`
	ProvinceID *int64  `db:"province_id"`
	DistrictID *int64  `db:"district_id"`
	SectorID   *int64  `db:"sector_id"`
	BannerURL  *string `db:"banner_url"`
	model.Metadata
}
