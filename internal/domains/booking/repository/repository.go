package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"afristay/infras/otel"
	"afristay/infras/postgres"
	"afristay/internal/domains/booking/model"
	gDto "afristay/shared/dto"
	gRepo "afristay/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Booking reads bookings joined with their listing's owner, title and currency.
type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CompareAndSwap(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) (bool, error)
	CompareAndSwapTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (bool, error)
	Sum(ctx context.Context, column string, filter gDto.FilterGroup) (float64, error)
	CountDistinct(ctx context.Context, column string, filter gDto.FilterGroup) (int, error)
}

type Payment interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type paymentImpl struct {
	gRepo.Repository[model.Payment]
}

func NewPayment(db *postgres.Connection, otel otel.Otel) Payment {
	return &paymentImpl{
		Repository: gRepo.NewRepository[model.Payment](model.PaymentEntity, model.PaymentTableName, model.FieldID, db, otel),
	}
}
