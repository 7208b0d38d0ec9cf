package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"afristay/infras/otel"
	"afristay/infras/postgres"
	"afristay/internal/domains/location/model"
	gDto "afristay/shared/dto"
	gRepo "afristay/shared/repository"
)

type Province interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Province, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Province, error)
}

type District interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.District, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.District, error)
}

type Sector interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Sector, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Sector, error)
}

type provinceImpl struct {
	gRepo.Repository[model.Province]
}

type districtImpl struct {
	gRepo.Repository[model.District]
}

type sectorImpl struct {
	gRepo.Repository[model.Sector]
}

func NewProvince(db *postgres.Connection, otel otel.Otel) Province {
	return &provinceImpl{
		Repository: gRepo.NewRepository[model.Province](model.ProvinceEntity, model.ProvinceTableName, model.FieldID, db, otel),
	}
}

func NewDistrict(db *postgres.Connection, otel otel.Otel) District {
	return &districtImpl{
		Repository: gRepo.NewRepository[model.District](model.DistrictEntity, model.DistrictTableName, model.FieldID, db, otel),
	}
}

func NewSector(db *postgres.Connection, otel otel.Otel) Sector {
	return &sectorImpl{
		Repository: gRepo.NewRepository[model.Sector](model.SectorEntity, model.SectorTableName, model.FieldID, db, otel),
	}
}
