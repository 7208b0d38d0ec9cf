package dto

import (
	"mime/multipart"
	"strings"

	"afristay/internal/domains/listing/model"
	"afristay/shared"
	gDto "afristay/shared/dto"
	gModel "afristay/shared/model"
	"afristay/shared/timezone"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title       string                  `json:"title"       validate:"required,max=150"`
	Description string                  `json:"description" validate:"omitempty,max=5000"`
	Price       float64                 `json:"price"       validate:"required,gt=0"`
	Currency    string                  `json:"currency"    validate:"omitempty,len=3,alpha"`
	Category    string                  `json:"category"    validate:"required,oneof=real_estate vehicle"`
	Address     string                  `json:"address"     validate:"omitempty,max=255"`
	ProvinceID  *int64                  `json:"province_id" validate:"omitempty,gt=0"`
	DistrictID  *int64                  `json:"district_id" validate:"omitempty,gt=0"`
	SectorID    *int64                  `json:"sector_id"   validate:"omitempty,gt=0"`
	Images      []*multipart.FileHeader `json:"images"      validate:"omitempty,max=10,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	Videos      []*multipart.FileHeader `json:"videos"      validate:"omitempty,max=3,dive,mimetypes=video/mp4 video/webm video/quicktime,maxfilesize=50"`
}

func (c *CreateListingRequest) ToModel(user, defaultCurrency string) model.Listing {
	currency := strings.ToUpper(c.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	return model.Listing{
		ID:           uuid.NewString(),
		OwnerID:      user,
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		Currency:     currency,
		Category:     model.Category(c.Category),
		Status:       model.StatusPending,
		Availability: model.AvailabilityAvailable,
		Address:      c.Address,
		ProvinceID:   c.ProvinceID,
		DistrictID:   c.DistrictID,
		SectorID:     c.SectorID,
		Metadata:     newMetadata(user),
	}
}

// NewMedia builds the media rows for urls already uploaded for listingID.
func NewMedia(listingID, user string, urls []string) []model.Media {
	media := make([]model.Media, len(urls))
	for i, url := range urls {
		media[i] = model.Media{
			ID:        uuid.NewString(),
			ListingID: listingID,
			URL:       url,
			Metadata:  newMetadata(user),
		}
	}

	return media
}

func newMetadata(user string) gModel.Metadata {
	now := timezone.Now()

	return gModel.NewMetadata(user, now)
}

type UpdateListingRequest struct {
	Title       string   `db:"title"       json:"title"       validate:"omitempty,max=150"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=5000"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Currency    string   `db:"currency"    json:"currency"    validate:"omitempty,len=3,alpha"`
	Category    string   `db:"category"    json:"category"    validate:"omitempty,oneof=real_estate vehicle"`
	Address     string   `db:"address"     json:"address"     validate:"omitempty,max=255"`
	ProvinceID  *int64   `db:"province_id" json:"province_id" validate:"omitempty,gt=0"`
	DistrictID  *int64   `db:"district_id" json:"district_id" validate:"omitempty,gt=0"`
	SectorID    *int64   `db:"sector_id"   json:"sector_id"   validate:"omitempty,gt=0"`
}

func (u UpdateListingRequest) Normalize() UpdateListingRequest {
	u.Currency = strings.ToUpper(u.Currency)

	return u
}

type ListingResponse struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Category     string   `json:"category"`
	Status       string   `json:"status"`
	Availability string   `json:"availability_status"`
	Address      string   `json:"address"`
	ProvinceID   *int64   `json:"province_id,omitempty"`
	DistrictID   *int64   `json:"district_id,omitempty"`
	SectorID     *int64   `json:"sector_id,omitempty"`
	Images       []string `json:"images"`
	Videos       []string `json:"videos,omitempty"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(model model.Listing) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Title = model.Title
	r.Description = model.Description
	r.Price = model.Price
	r.Currency = model.Currency
	r.Category = string(model.Category)
	r.Status = string(model.Status)
	r.Availability = string(model.Availability)
	r.Address = model.Address
	r.ProvinceID = model.ProvinceID
	r.DistrictID = model.DistrictID
	r.SectorID = model.SectorID
	r.Images = []string{}
	r.Metadata.FromModel(model.Metadata)
}

func (r *ListingResponse) WithMedia(images, videos []model.Media) {
	r.Images = urls(images)
	r.Videos = urls(videos)
}

func urls(media []model.Media) []string {
	res := make([]string, len(media))
	for i, m := range media {
		res[i] = m.URL
	}

	return res
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

// FromModels fills the page; images are grouped by listing id.
func (r *GetListingsResponse) FromModels(models []model.Listing, images []model.Media, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	grouped := map[string][]model.Media{}
	for _, image := range images {
		grouped[image.ListingID] = append(grouped[image.ListingID], image)
	}

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
		r.Listings[i].Images = urls(grouped[mod.ID])
	}
}

type AvailabilityResponse struct {
	ID           string `json:"id"`
	Availability string `json:"availability_status"`
}

// ListingQuery holds the search parameters of the listing endpoints.
type ListingQuery struct {
	Category     string
	Status       string
	Availability string
	Search       string
	OwnerID      string
	ProvinceID   *int64
	DistrictID   *int64
	SectorID     *int64
}

func (q ListingQuery) ToFilterGroup() gDto.FilterGroup {
	filter := shared.FilterAnd()

	if q.Category != "" {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldCategory, model.TableName, model.Category(q.Category)))
	}

	if q.Status != "" {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldStatus, model.TableName, model.Status(q.Status)))
	}

	if q.Availability != "" {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldAvailability, model.TableName, model.Availability(q.Availability)))
	}

	if q.Search != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Value:    q.Search,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if q.OwnerID != "" {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldOwnerID, model.TableName, q.OwnerID))
	}

	if q.ProvinceID != nil {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldProvinceID, model.TableName, *q.ProvinceID))
	}

	if q.DistrictID != nil {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldDistrictID, model.TableName, *q.DistrictID))
	}

	if q.SectorID != nil {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldSectorID, model.TableName, *q.SectorID))
	}

	return filter
}
