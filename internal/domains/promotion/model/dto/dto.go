package dto

import (
	"mime/multipart"
	"time"

	"afristay/internal/domains/promotion/model"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	gModel "afristay/shared/model"
	"afristay/shared/timezone"

	"github.com/google/uuid"
)

type CreatePromotionRequest struct {
	ListingID       string                `json:"listing_id"       validate:"required,uuid"`
	Title           string                `json:"title"            validate:"required,max=150"`
	Description     *string               `json:"description"      validate:"omitempty,max=2000"`
	DiscountPercent float64               `json:"discount_percent" validate:"gte=0,lte=100"`
	StartsAt        string                `json:"starts_at"        validate:"required,datetime=2006-01-02"`
	EndsAt          string                `json:"ends_at"          validate:"required,datetime=2006-01-02"`
	Banner          *multipart.FileHeader `json:"-"                validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

// Period parses the dates. Promotions run to the end of EndsAt and must not end before they start.
func (r CreatePromotionRequest) Period() (time.Time, time.Time, error) {
	return period(r.StartsAt, r.EndsAt)
}

func (r CreatePromotionRequest) ToModel(actor string, startsAt, endsAt time.Time, bannerURL *string) model.Promotion {
	now := timezone.Now()

	return model.Promotion{
		ID:              uuid.NewString(),
		ListingID:       r.ListingID,
		Title:           r.Title,
		Description:     r.Description,
		DiscountPercent: r.DiscountPercent,
		BannerURL:       bannerURL,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		Active:          true,
		Metadata:        gModel.NewMetadata(actor, now),
	}
}

type UpdatePromotionRequest struct {
	Title           *string  `json:"title"            validate:"omitempty,max=150"`
	Description     *string  `json:"description"      validate:"omitempty,max=2000"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	StartsAt        *string  `json:"starts_at"        validate:"omitempty,datetime=2006-01-02"`
	EndsAt          *string  `json:"ends_at"          validate:"omitempty,datetime=2006-01-02"`
	Active          *bool    `json:"active"`
}

// ToFields merges the request over current and returns the changed columns.
func (r UpdatePromotionRequest) ToFields(current model.Promotion, actor string) (map[string]any, error) {
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if r.Title != nil {
		fields[model.FieldTitle] = *r.Title
	}

	if r.Description != nil {
		fields[model.FieldDescription] = *r.Description
	}

	if r.DiscountPercent != nil {
		fields[model.FieldDiscountPercent] = *r.DiscountPercent
	}

	if r.Active != nil {
		fields[model.FieldActive] = *r.Active
	}

	if r.StartsAt != nil || r.EndsAt != nil {
		start := timezone.Format(current.StartsAt, constant.DayDateFormat)
		end := timezone.Format(current.EndsAt, constant.DayDateFormat)

		if r.StartsAt != nil {
			start = *r.StartsAt
		}

		if r.EndsAt != nil {
			end = *r.EndsAt
		}

		startsAt, endsAt, err := period(start, end)
		if err != nil {
			return nil, err
		}

		fields[model.FieldStartsAt] = startsAt
		fields[model.FieldEndsAt] = endsAt
	}

	return fields, nil
}

type PromotionResponse struct {
	ID              string  `json:"id"`
	ListingID       string  `json:"listing_id"`
	ListingTitle    string  `json:"listing_title"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DiscountPercent float64 `json:"discount_percent"`
	BannerURL       *string `json:"banner_url,omitempty"`
	StartsAt        string  `json:"starts_at"`
	EndsAt          string  `json:"ends_at"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (r *PromotionResponse) FromModel(m model.Promotion) {
	r.ID = m.ID
	r.ListingID = m.ListingID
	r.ListingTitle = m.ListingTitle
	r.Title = m.Title
	r.Description = m.Description
	r.DiscountPercent = m.DiscountPercent
	r.BannerURL = m.BannerURL
	r.StartsAt = timezone.Format(m.StartsAt, constant.DayDateFormat)
	r.EndsAt = timezone.Format(m.EndsAt, constant.DayDateFormat)
	r.Active = m.Active
	r.Metadata.FromModel(m.Metadata)
}

type GetPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromotionsResponse) FromModels(models []model.Promotion, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Promotions = make([]PromotionResponse, len(models))
	for i, m := range models {
		r.Promotions[i].FromModel(m)
	}
}

// PromotionQuery filters the public list. Only promotions running at Now are returned.
type PromotionQuery struct {
	ListingID string
	Now       time.Time
}

func (q PromotionQuery) ToFilterGroup() gDto.FilterGroup {
	filter := shared.FilterAnd(
		shared.FilterEq(model.FieldActive, model.TableName, true),
		gDto.Filter{Field: model.FieldStartsAt, Value: q.Now, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldEndsAt, Value: q.Now, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
	)

	if q.ListingID != constant.Empty {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldListingID, model.TableName, q.ListingID))
	}

	return filter
}

func period(start, end string) (time.Time, time.Time, error) {
	startsAt, err := timezone.Parse(constant.DayDateFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("invalid starts_at") // nolint:wrapcheck
	}

	endDay, err := timezone.Parse(constant.DayDateFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("invalid ends_at") // nolint:wrapcheck
	}

	if endDay.Before(startsAt) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("ends_at must not be before starts_at") // nolint:wrapcheck
	}

	return startsAt, endDay.Add(24*time.Hour - time.Second), nil
}
