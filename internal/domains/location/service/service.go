package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/internal/domains/location/model"
	"afristay/internal/domains/location/model/dto"
	"afristay/internal/domains/location/repository"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cachePrefix        = "location"
	cacheGetProvinces  = cachePrefix + ":provinces"
	cacheGetDistricts  = cachePrefix + ":districts"
	cacheGetSectors    = cachePrefix + ":sectors"
	cacheResolvedNames = cachePrefix + ":name"
)

type Location interface {
	GetProvinces(ctx context.Context) ([]dto.LocationResponse, error)
	GetDistricts(ctx context.Context, provinceID int64) ([]dto.LocationResponse, error)
	GetSectors(ctx context.Context, districtID int64) ([]dto.LocationResponse, error)
	// ResolveName renders "sector, district, province" skipping unknown parts.
	ResolveName(ctx context.Context, provinceID, districtID, sectorID *int64) (string, error)
}

type serviceImpl struct {
	provinces repository.Province
	districts repository.District
	sectors   repository.Sector
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	provinces repository.Province,
	districts repository.District,
	sectors repository.Sector,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Location {
	return &serviceImpl{
		provinces: provinces,
		districts: districts,
		sectors:   sectors,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) GetProvinces(ctx context.Context) (res []dto.LocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProvinces")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := cacheGetProvinces

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	models, err := s.provinces.GetAll(ctx, byName(model.ProvinceTableName), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get provinces")

		return nil, fmt.Errorf("failed to get provinces: %w", err)
	}

	res = dto.FromProvinces(models)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetDistricts(ctx context.Context, provinceID int64) (res []dto.LocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDistricts")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetDistricts, strconv.FormatInt(provinceID, 10))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	models, err := s.districts.GetAll(ctx, byName(model.DistrictTableName),
		shared.FilterAnd(shared.FilterEq(model.FieldProvinceID, model.DistrictTableName, provinceID)))
	if err != nil {
		log.Error().Err(err).Int64("provinceID", provinceID).Msg("failed to get districts")

		return nil, fmt.Errorf("failed to get districts: %w", err)
	}

	res = dto.FromDistricts(models)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetSectors(ctx context.Context, districtID int64) (res []dto.LocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSectors")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetSectors, strconv.FormatInt(districtID, 10))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	models, err := s.sectors.GetAll(ctx, byName(model.SectorTableName),
		shared.FilterAnd(shared.FilterEq(model.FieldDistrictID, model.SectorTableName, districtID)))
	if err != nil {
		log.Error().Err(err).Int64("districtID", districtID).Msg("failed to get sectors")

		return nil, fmt.Errorf("failed to get sectors: %w", err)
	}

	res = dto.FromSectors(models)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) ResolveName(ctx context.Context, provinceID, districtID, sectorID *int64) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveName")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheResolvedNames, idPart(provinceID), idPart(districtID), idPart(sectorID))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	parts := make([]string, 0, 3)

	if sectorID != nil {
		sector, err := s.sectors.Get(ctx, shared.FilterAnd(shared.FilterEq(model.FieldID, model.SectorTableName, *sectorID)))
		if err != nil {
			log.Error().Err(err).Msg("failed to get sector")

			return res, fmt.Errorf("failed to get sector: %w", err)
		}

		parts = appendName(parts, sector.Name)
	}

	if districtID != nil {
		district, err := s.districts.Get(ctx, shared.FilterAnd(shared.FilterEq(model.FieldID, model.DistrictTableName, *districtID)))
		if err != nil {
			log.Error().Err(err).Msg("failed to get district")

			return res, fmt.Errorf("failed to get district: %w", err)
		}

		parts = appendName(parts, district.Name)
	}

	if provinceID != nil {
		province, err := s.provinces.Get(ctx, shared.FilterAnd(shared.FilterEq(model.FieldID, model.ProvinceTableName, *provinceID)))
		if err != nil {
			log.Error().Err(err).Msg("failed to get province")

			return res, fmt.Errorf("failed to get province: %w", err)
		}

		parts = appendName(parts, province.Name)
	}

	res = strings.Join(parts, ", ")
	s.save(ctx, cacheKey, res)

	return res, nil
}

// ValidateHierarchy reports a bad request when the district is not part of the province or the
// sector is not part of the district.
func ValidateHierarchy(ctx context.Context, svc Location, provinceID, districtID, sectorID *int64) error {
	if districtID != nil && provinceID != nil {
		districts, err := svc.GetDistricts(ctx, *provinceID)
		if err != nil {
			return err
		}

		if !containsID(districts, *districtID) {
			return failure.BadRequestFromString("district does not belong to province") // nolint:wrapcheck
		}
	}

	if sectorID != nil && districtID != nil {
		sectors, err := svc.GetSectors(ctx, *districtID)
		if err != nil {
			return err
		}

		if !containsID(sectors, *sectorID) {
			return failure.BadRequestFromString("sector does not belong to district") // nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save location cache")
		}
	}()
}

func byName(table string) gDto.QueryParams {
	return gDto.QueryParams{SortBy: table + "." + model.FieldName, SortDir: gDto.SortDirAsc}
}

func idPart(id *int64) string {
	if id == nil {
		return "-"
	}

	return strconv.FormatInt(*id, 10)
}

func appendName(parts []string, name string) []string {
	if name == constant.Empty {
		return parts
	}

	return append(parts, name)
}

func containsID(items []dto.LocationResponse, id int64) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}

	return false
}
