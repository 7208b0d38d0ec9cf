package dto

import "afristay/internal/domains/location/model"

type LocationResponse struct {
	ID       int64  `json:"id"`
	ParentID int64  `json:"parent_id,omitempty"`
	Name     string `json:"name"`
}

func FromProvinces(models []model.Province) []LocationResponse {
	res := make([]LocationResponse, len(models))
	for i, m := range models {
		res[i] = LocationResponse{ID: m.ID, Name: m.Name}
	}

	return res
}

func FromDistricts(models []model.District) []LocationResponse {
	res := make([]LocationResponse, len(models))
	for i, m := range models {
		res[i] = LocationResponse{ID: m.ID, ParentID: m.ProvinceID, Name: m.Name}
	}

	return res
}

func FromSectors(models []model.Sector) []LocationResponse {
	res := make([]LocationResponse, len(models))
	for i, m := range models {
		res[i] = LocationResponse{ID: m.ID, ParentID: m.DistrictID, Name: m.Name}
	}

	return res
}
