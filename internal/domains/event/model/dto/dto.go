package dto

import (
	"mime/multipart"
	"time"

	"afristay/internal/domains/event/model"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	gModel "afristay/shared/model"
	"afristay/shared/timezone"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string                `json:"title"       validate:"required,max=150"`
	Description *string               `json:"description" validate:"omitempty,max=4000"`
	EventDate   string                `json:"event_date"  validate:"required,datetime=2006-01-02"`
	ProvinceID  *int64                `json:"province_id" validate:"omitempty,gt=0"`
	DistrictID  *int64                `json:"district_id" validate:"omitempty,gt=0"`
	SectorID    *int64                `json:"sector_id"   validate:"omitempty,gt=0"`
	Banner      *multipart.FileHeader `json:"-"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (r CreateEventRequest) Date() (time.Time, error) {
	date, err := timezone.Parse(constant.DayDateFormat, r.EventDate)
	if err != nil {
		return date, failure.BadRequestFromString("invalid event_date") // nolint:wrapcheck
	}

	return date, nil
}

func (r CreateEventRequest) ToModel(actor, location string, date time.Time, bannerURL *string) model.Event {
	now := timezone.Now()

	return model.Event{
		ID:          uuid.NewString(),
		Title:       r.Title,
		Description: r.Description,
		EventDate:   date,
		Location:    location,
		ProvinceID:  r.ProvinceID,
		DistrictID:  r.DistrictID,
		SectorID:    r.SectorID,
		BannerURL:   bannerURL,
		Metadata:    gModel.NewMetadata(actor, now),
	}
}

type EventResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	EventDate   string  `json:"event_date"`
	Location    string  `json:"location"`
	ProvinceID  *int64  `json:"province_id,omitempty"`
	DistrictID  *int64  `json:"district_id,omitempty"`
	SectorID    *int64  `json:"sector_id,omitempty"`
	BannerURL   *string `json:"banner_url,omitempty"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(m model.Event) {
	r.ID = m.ID
	r.Title = m.Title
	r.Description = m.Description
	r.EventDate = timezone.Format(m.EventDate, constant.DayDateFormat)
	r.Location = m.Location
	r.ProvinceID = m.ProvinceID
	r.DistrictID = m.DistrictID
	r.SectorID = m.SectorID
	r.BannerURL = m.BannerURL
	r.Metadata.FromModel(m.Metadata)
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.Event, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventResponse, len(models))
	for i, m := range models {
		r.Events[i].FromModel(m)
	}
}

// EventQuery filters the public list. From, when set, hides events before that day.
type EventQuery struct {
	From       *time.Time
	ProvinceID *int64
}

func (q EventQuery) ToFilterGroup() gDto.FilterGroup {
	filter := shared.FilterAnd()

	if q.From != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldEventDate,
			Value:    *q.From,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if q.ProvinceID != nil {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldProvinceID, model.TableName, *q.ProvinceID))
	}

	return filter
}
