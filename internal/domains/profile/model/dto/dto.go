package dto

import (
	"afristay/internal/domains/profile/model"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/session"
	"afristay/shared/timezone"
)

type ProfileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	FirstName string  `json:"first_name"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	Banned    bool    `json:"banned"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(model model.Profile) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.FirstName = model.FirstName()
	r.Phone = model.Phone
	r.Role = model.Role.String()
	r.Banned = model.Banned
	r.LastLogin = nil

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetProfilesResponse struct {
	Profiles  []ProfileResponse `json:"profiles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProfilesResponse) FromModels(models []model.Profile, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Profiles = make([]ProfileResponse, len(models))
	for i, mod := range models {
		r.Profiles[i].FromModel(mod)
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user owner admin"`
}

func (r UpdateRoleRequest) ToRole() session.Role {
	role, _ := session.ParseRole(r.Role)

	return role
}

type UpdateRoleModel struct {
	Role session.Role `db:"role"`
}

type SetBannedRequest struct {
	Banned *bool `json:"banned" validate:"required"`
}

// ProfileQuery holds the admin search parameters.
type ProfileQuery struct {
	Search string
	Role   string
	Banned *bool
}

func (q ProfileQuery) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if q.Search != "" {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_email", Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: q.Search, Table: model.TableName},
				gDto.Filter{ArgName: "search_name", Field: model.FieldFullName, Operator: gDto.FilterOperatorLike, Value: q.Search, Table: model.TableName},
			},
		})
	}

	if role, ok := session.ParseRole(q.Role); ok {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldRole, model.TableName, role))
	}

	if q.Banned != nil {
		filter.Filters = append(filter.Filters, shared.FilterEq(model.FieldBanned, model.TableName, *q.Banned))
	}

	return filter
}
