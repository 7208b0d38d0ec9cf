package service

import (
	"context"
	"fmt"

	"afristay/config"
	"afristay/infras/live"
	"afristay/infras/otel"
	"afristay/internal/domains/booking/model"
	"afristay/internal/domains/booking/model/dto"
	"afristay/internal/domains/booking/repository"
	listingModel "afristay/internal/domains/listing/model"
	listingRepo "afristay/internal/domains/listing/repository"
	locationService "afristay/internal/domains/location/service"
	notificationModel "afristay/internal/domains/notification/model"
	notificationService "afristay/internal/domains/notification/service"
	profileModel "afristay/internal/domains/profile/model"
	profileRepo "afristay/internal/domains/profile/repository"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"
	"afristay/shared/timezone"
	"afristay/shared/transaction"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = model.CachePrefix + ":get"
	cacheGetAllBooking = model.CachePrefix + ":gets"

	argExpectedStatus       = "expected_status"
	argExpectedAvailability = "expected_availability"

	eventTypePrefix = "booking."
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.BookingQuery) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, query dto.BookingQuery) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Approve(ctx context.Context, id string) (dto.StatusResponse, error)
	Reject(ctx context.Context, id string) (dto.StatusResponse, error)
	Cancel(ctx context.Context, id string) (dto.StatusResponse, error)
	MarkPaid(ctx context.Context, id string) (dto.StatusResponse, error)
	Complete(ctx context.Context, id string) (dto.StatusResponse, error)
	Receipt(ctx context.Context, id string) (dto.ReceiptResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	payments  repository.Payment
	listings  listingRepo.Listing
	profiles  profileRepo.Profile
	location  locationService.Location
	publisher notificationService.Publisher
	live      live.Broadcaster
	tx        transaction.Transactor
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	payments repository.Payment,
	listings listingRepo.Listing,
	profiles profileRepo.Profile,
	location locationService.Location,
	publisher notificationService.Publisher,
	broadcaster live.Broadcaster,
	tx transaction.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		payments:  payments,
		listings:  listings,
		profiles:  profiles,
		location:  location,
		publisher: publisher,
		live:      broadcaster,
		tx:        tx,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if caller.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	start, end, err := req.Dates()
	if err != nil {
		return res, err
	}

	listing, err := s.listings.Get(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if !listing.Bookable() {
		return res, failure.Conflict("listing is not available for booking") // nolint:wrapcheck
	}

	booking := req.ToModel(caller.UserID, start, end, listing.Price)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.OwnerID = listing.OwnerID
	booking.ListingTitle = listing.Title
	booking.Currency = listing.Currency

	res.FromModel(booking)

	s.invalidate(ctx, constant.Empty, false)
	s.broadcast(booking)

	return res, nil
}

// GetAll is scoped by role: admins see every booking, owners the bookings on their listings and
// users their own.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.BookingQuery) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	switch {
	case caller.IsAdmin():
	case caller.IsOwner():
		query.OwnerID = caller.UserID
	case caller.UserID != constant.Empty:
		query.UserID = caller.UserID
	default:
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	return s.list(ctx, req, query)
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, query dto.BookingQuery) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	if caller.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	query.UserID = caller.UserID
	query.OwnerID = constant.Empty

	return s.list(ctx, req, query)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, query dto.BookingQuery) (res dto.GetBookingsResponse, err error) {
	req.RestrictSort(model.TableName, constant.FieldCreatedAt, model.FieldStartDate, model.FieldTotalAmount)

	filter := query.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")
	} else {
		booking, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		go func(res dto.BookingResponse) {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}(res)
	}

	if !caller.IsAdmin() && res.UserID != caller.UserID && res.OwnerID != caller.UserID {
		return dto.BookingResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

// Approve moves a pending booking to approved and marks its listing booked in one transaction.
// A listing that is no longer available rolls the whole approval back.
func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	booking, err := s.authorize(ctx, id, model.StatusApproved, manages)
	if err != nil {
		return res, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.swapStatus(ctx, tx, booking, model.StatusApproved, caller.Actor(), nil); err != nil {
			return err
		}

		swapped, err := s.swapAvailability(ctx, tx, booking.ListingID, listingModel.AvailabilityAvailable, listingModel.AvailabilityBooked, caller.Actor())
		if err != nil {
			return err
		}

		if !swapped {
			return failure.Conflict("listing is not available") // nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to approve booking")

		return res, err
	}

	booking.Status = model.StatusApproved

	s.invalidate(ctx, id, true)
	s.notify(ctx, notificationModel.KindBookingApproved, booking)
	s.broadcast(booking)

	return status(booking), nil
}

// Reject never touches the listing: a pending booking never marked it booked.
func (s *serviceImpl) Reject(ctx context.Context, id string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	booking, err := s.authorize(ctx, id, model.StatusRejected, manages)
	if err != nil {
		return res, err
	}

	mod, filter := statusSwap(booking, model.StatusRejected, caller.Actor(), nil)

	if err = checkSwap(s.repo.CompareAndSwap(ctx, mod, filter)); err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to reject booking")

		return res, err
	}

	booking.Status = model.StatusRejected

	s.invalidate(ctx, id, false)
	s.notify(ctx, notificationModel.KindBookingRejected, booking)
	s.broadcast(booking)

	return status(booking), nil
}

// Cancel is reserved for the guest. Cancelling an approved booking frees the listing again.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	booking, err := s.authorize(ctx, id, model.StatusCancelled, guest)
	if err != nil {
		return res, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.swapStatus(ctx, tx, booking, model.StatusCancelled, caller.Actor(), nil); err != nil {
			return err
		}

		if !booking.Status.HoldsListing() {
			return nil
		}

		return s.release(ctx, tx, booking, caller.Actor())
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to cancel booking")

		return res, err
	}

	released := booking.Status.HoldsListing()
	booking.Status = model.StatusCancelled

	s.invalidate(ctx, id, released)
	s.broadcast(booking)

	return status(booking), nil
}

// MarkPaid records an in person payment. It only exists in demo mode and is not a payment integration.
func (s *serviceImpl) MarkPaid(ctx context.Context, id string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaid")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !s.cfg.Booking.DemoMode {
		return res, failure.Conflict("marking bookings paid is only available in demo mode") // nolint:wrapcheck
	}

	caller := session.FromContext(ctx)

	booking, err := s.authorize(ctx, id, model.StatusPaid, manages)
	if err != nil {
		return res, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.payments.InsertTx(ctx, tx, dto.NewPayment(booking, caller.Actor())); err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		return s.swapStatus(ctx, tx, booking, model.StatusPaid, caller.Actor(), map[string]any{
			model.FieldPaymentStatus: model.PaymentStatusPaid,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to mark booking paid")

		return res, err
	}

	booking.Status = model.StatusPaid
	booking.PaymentStatus = model.PaymentStatusPaid

	s.invalidate(ctx, id, false)
	s.broadcast(booking)

	return status(booking), nil
}

// Complete closes a paid stay and frees the listing. Internal callers authenticated by API key may
// complete any booking.
func (s *serviceImpl) Complete(ctx context.Context, id string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	booking, err := s.authorize(ctx, id, model.StatusCompleted, func(caller session.Session, booking model.Booking) bool {
		return caller.Internal || manages(caller, booking)
	})
	if err != nil {
		return res, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.swapStatus(ctx, tx, booking, model.StatusCompleted, caller.Actor(), nil); err != nil {
			return err
		}

		return s.release(ctx, tx, booking, caller.Actor())
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to complete booking")

		return res, err
	}

	booking.Status = model.StatusCompleted

	s.invalidate(ctx, id, true)
	s.notify(ctx, notificationModel.KindBookingCompleted, booking)
	s.broadcast(booking)

	return status(booking), nil
}

func (s *serviceImpl) Receipt(ctx context.Context, id string) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(&err)

	caller := session.FromContext(ctx)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !guest(caller, booking) && !manages(caller, booking) {
		return res, failure.ResourceRestrictedError
	}

	if !booking.Status.Receipted() {
		return res, failure.Conflict("receipts are issued once a booking is approved") // nolint:wrapcheck
	}

	return s.receipt(ctx, booking)
}

func (s *serviceImpl) receipt(ctx context.Context, booking model.Booking) (res dto.ReceiptResponse, err error) {
	res.FromModel(booking)

	guestProfile, err := s.profile(ctx, booking.UserID)
	if err != nil {
		return res, err
	}

	hostProfile, err := s.profile(ctx, booking.OwnerID)
	if err != nil {
		return res, err
	}

	res.Guest = contact(guestProfile)
	res.Host = contact(hostProfile)

	listing, err := s.listings.Get(ctx, shared.FilterByID(booking.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	res.Location, err = s.location.ResolveName(ctx, listing.ProvinceID, listing.DistrictID, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve listing location")

		return res, fmt.Errorf("failed to resolve listing location: %w", err)
	}

	if res.Location == constant.Empty {
		res.Location = listing.Address
	}

	return res, nil
}

type rule func(caller session.Session, booking model.Booking) bool

func manages(caller session.Session, booking model.Booking) bool {
	return caller.IsAdmin() || (caller.UserID != constant.Empty && booking.OwnerID == caller.UserID)
}

func guest(caller session.Session, booking model.Booking) bool {
	return caller.UserID != constant.Empty && booking.UserID == caller.UserID
}

// authorize loads the booking and checks both the caller and that next is reachable from the
// current status.
func (s *serviceImpl) authorize(ctx context.Context, id string, next model.Status, allowed rule) (model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return booking, err
	}

	if !allowed(session.FromContext(ctx), booking) {
		return booking, failure.ResourceRestrictedError
	}

	if !booking.Status.CanTransitionTo(next) {
		return booking, failure.Conflict(fmt.Sprintf("booking is %s and cannot become %s", booking.Status, next)) // nolint:wrapcheck
	}

	return booking, nil
}

// statusSwap builds the update moving the booking from its loaded status to next.
func statusSwap(booking model.Booking, next model.Status, actor string, extra map[string]any) (map[string]any, gDto.FilterGroup) {
	mod := map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	for key, value := range extra {
		mod[key] = value
	}

	filter := shared.FilterAnd(
		shared.FilterEq(model.FieldID, model.TableName, booking.ID),
		gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Value: booking.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)

	return mod, filter
}

// swapStatus applies statusSwap inside tx. A concurrent change makes it a conflict.
func (s *serviceImpl) swapStatus(ctx context.Context, tx *sqlx.Tx, booking model.Booking, next model.Status, actor string, extra map[string]any) error {
	mod, filter := statusSwap(booking, next, actor, extra)

	return checkSwap(s.repo.CompareAndSwapTx(ctx, tx, mod, filter))
}

func checkSwap(ok bool, err error) error {
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if !ok {
		return failure.Conflict("booking status changed, reload and retry") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) swapAvailability(ctx context.Context, tx *sqlx.Tx, listingID string, from, to listingModel.Availability, actor string) (bool, error) {
	swapped, err := s.listings.CompareAndSwapTx(ctx, tx, map[string]any{
		listingModel.FieldAvailability: to,
		constant.FieldModifiedAt:       timezone.Now(),
		constant.FieldModifiedBy:       actor,
	}, shared.FilterAnd(
		shared.FilterEq(listingModel.FieldID, listingModel.TableName, listingID),
		gDto.Filter{ArgName: argExpectedAvailability, Field: listingModel.FieldAvailability, Value: from, Operator: gDto.FilterOperatorEq, Table: listingModel.TableName},
	))
	if err != nil {
		return false, fmt.Errorf("failed to update listing availability: %w", err)
	}

	return swapped, nil
}

// release frees a booked listing. A listing that is not booked anymore is left as it is.
func (s *serviceImpl) release(ctx context.Context, tx *sqlx.Tx, booking model.Booking, actor string) error {
	swapped, err := s.swapAvailability(ctx, tx, booking.ListingID, listingModel.AvailabilityBooked, listingModel.AvailabilityAvailable, actor)
	if err != nil {
		return err
	}

	if !swapped {
		log.Warn().Str("bookingID", booking.ID).Str("listingID", booking.ListingID).Msg("listing was not booked when releasing it")
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) profile(ctx context.Context, id string) (profileModel.Profile, error) {
	profile, err := s.profiles.Get(ctx, shared.FilterByID(id, profileModel.FieldID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return profile, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// notify queues a mail to the guest. Failures are logged and never undo the transition.
func (s *serviceImpl) notify(ctx context.Context, kind notificationModel.Kind, booking model.Booking) {
	receipt, err := s.receipt(ctx, booking)
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Str("kind", string(kind)).Msg("failed to prepare booking notification")

		return
	}

	payload := &notificationModel.Booking{
		BookingID:     receipt.BookingID,
		ListingTitle:  receipt.ListingTitle,
		Location:      receipt.Location,
		GuestName:     receipt.Guest.Name,
		HostName:      receipt.Host.Name,
		HostPhone:     receipt.Host.Phone,
		StartDate:     receipt.StartDate,
		EndDate:       receipt.EndDate,
		Nights:        receipt.Nights,
		NightlyPrice:  receipt.NightlyPrice,
		TotalAmount:   receipt.TotalAmount,
		Currency:      receipt.Currency,
		PaymentMethod: receipt.PaymentMethod,
	}

	if booking.Status.Receipted() {
		payload.ReceiptNumber = receipt.ReceiptNumber
		payload.IssuedAt = timezone.Format(timezone.Now(), constant.DayDateFormat)
	}

	message := notificationModel.Message{
		Kind:        kind,
		ReferenceID: booking.ID,
		Booking:     payload,
	}

	if receipt.Guest.Email != constant.Empty {
		message.To = []string{receipt.Guest.Email}
	}

	if err = s.publisher.Publish(ctx, message); err != nil {
		log.Error().Err(err).Str("key", message.Key()).Msg("failed to queue booking notification")
	}
}

func (s *serviceImpl) broadcast(booking model.Booking) {
	s.live.Broadcast(live.Event{
		Type:      eventTypePrefix + string(booking.Status),
		BookingID: booking.ID,
		ListingID: booking.ListingID,
		Status:    string(booking.Status),
		OwnerID:   booking.OwnerID,
		UserID:    booking.UserID,
	})
}

// invalidate drops the cached booking reads. listings is set when the transition changed a
// listing's availability.
func (s *serviceImpl) invalidate(ctx context.Context, id string, listings bool) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)

		if listings {
			shared.InvalidateCaches(c, s.cache, listingModel.CachePrefix)
		}
	}()
}

func status(booking model.Booking) dto.StatusResponse {
	return dto.StatusResponse{
		ID:            booking.ID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
	}
}

func contact(profile profileModel.Profile) dto.ContactResponse {
	return dto.ContactResponse{
		Name:  profile.DisplayName(),
		Email: profile.Email,
		Phone: profile.ContactPhone(),
	}
}
