package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"afristay/infras/otel"
	"afristay/infras/postgres"
	"afristay/internal/domains/listing/model"
	gDto "afristay/shared/dto"
	gRepo "afristay/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Listing interface {
	Insert(ctx context.Context, model model.Listing) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Listing) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Listing, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Listing, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CompareAndSwap(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) (bool, error)
	CompareAndSwapTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

// Media stores the url rows of one media table.
type Media interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Media) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Media, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Images interface {
	Media
}

type Videos interface {
	Media
}

type repositoryImpl struct {
	gRepo.Repository[model.Listing]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Listing {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Listing](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type mediaImpl struct {
	gRepo.Repository[model.Media]
}

func NewImages(db *postgres.Connection, otel otel.Otel) Images {
	return &mediaImpl{
		Repository: gRepo.NewRepository[model.Media](model.ImageEntity, model.ImageTableName, model.FieldID, db, otel),
	}
}

func NewVideos(db *postgres.Connection, otel otel.Otel) Videos {
	return &mediaImpl{
		Repository: gRepo.NewRepository[model.Media](model.VideoEntity, model.VideoTableName, model.FieldID, db, otel),
	}
}
