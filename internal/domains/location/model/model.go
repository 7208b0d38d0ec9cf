package model

const (
	ProvinceTableName = "provinces"
	DistrictTableName = "districts"
	SectorTableName   = "sectors"

	ProvinceEntity = "province"
	DistrictEntity = "district"
	SectorEntity   = "sector"

	FieldID         = "id"
	FieldName       = "name"
	FieldProvinceID = "province_id"
	FieldDistrictID = "district_id"
)

type Province struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type District struct {
	ID         int64  `db:"id"`
	ProvinceID int64  `db:"province_id"`
	Name       string `db:"name"`
}

type Sector struct {
	ID         int64  `db:"id"`
	DistrictID int64  `db:"district_id"`
	Name       string `db:"name"`
}
