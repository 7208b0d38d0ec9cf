package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"afristay/config"
	"afristay/infras/otel"
	bookingModel "afristay/internal/domains/booking/model"
	bookingRepo "afristay/internal/domains/booking/repository"
	"afristay/internal/domains/dashboard/model/dto"
	listingModel "afristay/internal/domains/listing/model"
	listingRepo "afristay/internal/domains/listing/repository"
	profileRepo "afristay/internal/domains/profile/repository"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Dashboard interface {
	// Counts re-queries on every call.
	Counts(ctx context.Context) (dto.CountsResponse, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	listings listingRepo.Listing
	profiles profileRepo.Profile
	cfg      *config.Config
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, listings listingRepo.Listing, profiles profileRepo.Profile, cfg *config.Config, otel otel.Otel) Dashboard {
	return &serviceImpl{
		bookings: bookings,
		listings: listings,
		profiles: profiles,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Counts(ctx context.Context) (res dto.CountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Counts")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	res.Currency = s.cfg.Booking.DefaultCurrency

	switch {
	case caller.IsAdmin():
		err = s.admin(ctx, &res)
	case caller.IsOwner():
		err = s.owner(ctx, caller.UserID, &res)
	case caller.Authenticated():
		res.TotalBookings, err = s.bookings.Count(ctx, shared.FilterAnd(
			shared.FilterEq(bookingModel.FieldUserID, bookingModel.TableName, caller.UserID),
		))
	default:
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("role", caller.Role.String()).Msg("failed to count dashboard")

		return dto.CountsResponse{}, fmt.Errorf("failed to count dashboard: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) admin(ctx context.Context, res *dto.CountsResponse) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		res.TotalUsers, err = s.profiles.Count(ctx, gDto.FilterGroup{})

		return err
	})
	g.Go(func() (err error) {
		res.TotalListings, err = s.listings.Count(ctx, gDto.FilterGroup{})

		return err
	})
	g.Go(func() (err error) {
		res.TotalBookings, err = s.bookings.Count(ctx, gDto.FilterGroup{})

		return err
	})
	g.Go(func() (err error) {
		res.TotalRevenue, err = s.bookings.Sum(ctx, bookingModel.FieldTotalAmount, shared.FilterAnd(earning()))

		return err
	})

	return g.Wait() // nolint:wrapcheck
}

func (s *serviceImpl) owner(ctx context.Context, ownerID string, res *dto.CountsResponse) error {
	owned := shared.FilterEq(bookingModel.FieldOwnerID, bookingModel.ListingTableName, ownerID)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		res.TotalUsers, err = s.bookings.CountDistinct(ctx, bookingModel.FieldUserID, shared.FilterAnd(owned))

		return err
	})
	g.Go(func() (err error) {
		res.TotalListings, err = s.listings.Count(ctx, shared.FilterAnd(
			shared.FilterEq(listingModel.FieldOwnerID, listingModel.TableName, ownerID),
		))

		return err
	})
	g.Go(func() (err error) {
		res.TotalBookings, err = s.bookings.Count(ctx, shared.FilterAnd(owned))

		return err
	})
	g.Go(func() (err error) {
		res.TotalRevenue, err = s.bookings.Sum(ctx, bookingModel.FieldTotalAmount, shared.FilterAnd(owned, earning()))

		return err
	})

	return g.Wait() // nolint:wrapcheck
}

func earning() gDto.Filter {
	return gDto.Filter{
		Field:    bookingModel.FieldStatus,
		Value:    bookingModel.EarningStatuses,
		Operator: gDto.FilterOperatorIn,
		Table:    bookingModel.TableName,
	}
}
