package booking_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	bk "github.com/hanksha/hotel-booking-system-backend/booking"
	bk_mocks "github.com/hanksha/hotel-booking-system-backend/booking/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var ownedBookings = []bk.Booking{{
	ID:         "BK11111111",
	Service:    "room",
	Date:       "2024-05-01",
	Time:       "10:00",
	Name:       "Ann",
	Email:      "ann@x.com",
	Phone:      "555-1",
	Notes:      "late arrival",
	Status:     "confirmed",
	OwnerEmail: "ann@x.com",
}}

type testDeps struct {
	repo    *bk_mocks.MockBookingRepository
	service *bk.Service
	ctx     context.Context
}

func newTestDeps(t *testing.T) (*gomock.Controller, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := bk_mocks.NewMockBookingRepository(ctrl)
	svc := bk.NewService(repo)

	return ctrl, testDeps{
		repo: repo, service: svc, ctx: context.Background(),
	}
}

func ptr(s string) *string {
	return &s
}

func TestListBookings(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingsForEmail(testDeps.ctx, "ann@x.com").Return(ownedBookings, nil).Times(1)

		bookings, err := testDeps.service.ListBookings(testDeps.ctx, "ann@x.com")

		require.Nil(t, err)
		require.Equal(t, ownedBookings, bookings)
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingsForEmail(testDeps.ctx, "ann@x.com").Return(nil, errors.New("repo error")).Times(1)

		bookings, err := testDeps.service.ListBookings(testDeps.ctx, "ann@x.com")

		require.Error(t, err)
		require.Equal(t, 0, len(bookings))
	})
}

func TestCreateBooking(t *testing.T) {
	req := bk.BookingRequest{
		Service: "room",
		Date:    "2024-05-01",
		Time:    "10:00",
		Name:    "Ann",
		Email:   "ann@x.com",
		Phone:   "555-1",
		Notes:   "late arrival",
	}

	t.Run("success", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		var inserted bk.Booking

		testDeps.repo.EXPECT().InsertBooking(testDeps.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, b bk.Booking) (bk.Booking, error) {
				inserted = b
				return b, nil
			}).Times(1)

		booking, err := testDeps.service.CreateBooking(testDeps.ctx, "ann@x.com", req)

		require.Nil(t, err)
		require.Equal(t, inserted, booking)

		require.Equal(t, "confirmed", booking.Status)
		require.Equal(t, "ann@x.com", booking.OwnerEmail)
		require.Equal(t, "room", booking.Service)
		require.Equal(t, "2024-05-01", booking.Date)
		require.Equal(t, "10:00", booking.Time)

		require.Len(t, booking.ID, 10)
		require.True(t, strings.HasPrefix(booking.ID, "BK"))
		require.Equal(t, strings.ToUpper(booking.ID), booking.ID)
	})

	t.Run("missing field", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		incomplete := req
		incomplete.Phone = ""

		testDeps.repo.EXPECT().InsertBooking(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.CreateBooking(testDeps.ctx, "ann@x.com", incomplete)

		var validationErr *bk.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "phone", validationErr.Field)
	})

	t.Run("bad date", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		invalid := req
		invalid.Date = "01/05/2024"

		testDeps.repo.EXPECT().InsertBooking(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.CreateBooking(testDeps.ctx, "ann@x.com", invalid)

		var validationErr *bk.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "date", validationErr.Field)
	})

	t.Run("time off the grid", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		invalid := req
		invalid.Time = "20:00"

		testDeps.repo.EXPECT().InsertBooking(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.CreateBooking(testDeps.ctx, "ann@x.com", invalid)

		var validationErr *bk.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "time", validationErr.Field)
	})

	t.Run("slot taken", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().InsertBooking(testDeps.ctx, gomock.Any()).Return(bk.Booking{}, bk.ErrSlotTaken).Times(1)

		_, err := testDeps.service.CreateBooking(testDeps.ctx, "ann@x.com", req)

		require.ErrorIs(t, err, bk.ErrSlotTaken)
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().InsertBooking(testDeps.ctx, gomock.Any()).Return(bk.Booking{}, errors.New("repo error")).Times(1)

		_, err := testDeps.service.CreateBooking(testDeps.ctx, "ann@x.com", req)

		require.Error(t, err)
	})
}

func TestModifyBooking(t *testing.T) {
	existing := ownedBookings[0]

	t.Run("success", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		updated := existing
		updated.Time = "11:30"
		updated.Notes = "early arrival"

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(testDeps.ctx, updated).Return(nil).Times(1)

		booking, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", existing.ID, bk.BookingUpdate{
			Time:  ptr("11:30"),
			Notes: ptr("early arrival"),
		})

		require.Nil(t, err)
		require.Equal(t, updated, booking)
	})

	t.Run("owner and id are untouchable", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		updated := existing
		updated.Name = "Anna"

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(testDeps.ctx, updated).Return(nil).Times(1)

		booking, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", existing.ID, bk.BookingUpdate{
			Name: ptr("Anna"),
		})

		require.Nil(t, err)
		require.Equal(t, existing.ID, booking.ID)
		require.Equal(t, existing.OwnerEmail, booking.OwnerEmail)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, "BK00000000").Return(bk.Booking{}, bk.ErrBookingNotFound).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", "BK00000000", bk.BookingUpdate{})

		require.ErrorIs(t, err, bk.ErrBookingNotFound)
	})

	t.Run("not allowed", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.ModifyBooking(testDeps.ctx, "bob@x.com", existing.ID, bk.BookingUpdate{
			Name: ptr("Bob"),
		})

		require.ErrorIs(t, err, bk.ErrNotAllowed)
	})

	t.Run("legacy row falls back to contact email", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		legacy := existing
		legacy.OwnerEmail = ""

		updated := legacy
		updated.Notes = "updated"

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, legacy.ID).Return(legacy, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(testDeps.ctx, updated).Return(nil).Times(1)

		_, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", legacy.ID, bk.BookingUpdate{
			Notes: ptr("updated"),
		})

		require.Nil(t, err)
	})

	t.Run("cancelled booking cannot be modified", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		cancelled := existing
		cancelled.Status = "cancelled"

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, cancelled.ID).Return(cancelled, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", cancelled.ID, bk.BookingUpdate{
			Notes: ptr("updated"),
		})

		require.ErrorIs(t, err, bk.ErrBookingCancelled)
	})

	t.Run("empty required field rejected", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", existing.ID, bk.BookingUpdate{
			Phone: ptr("  "),
		})

		var validationErr *bk.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "phone", validationErr.Field)
	})

	t.Run("move to taken slot", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(testDeps.ctx, gomock.Any()).Return(bk.ErrSlotTaken).Times(1)

		_, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", existing.ID, bk.BookingUpdate{
			Time: ptr("11:00"),
		})

		require.ErrorIs(t, err, bk.ErrSlotTaken)
	})

	t.Run("repo error UpdateBooking", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().UpdateBooking(testDeps.ctx, gomock.Any()).Return(errors.New("repo error")).Times(1)

		_, err := testDeps.service.ModifyBooking(testDeps.ctx, "ann@x.com", existing.ID, bk.BookingUpdate{
			Notes: ptr("updated"),
		})

		require.Error(t, err)
	})
}

func TestCancelBooking(t *testing.T) {
	existing := ownedBookings[0]

	t.Run("success", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().SetBookingStatus(testDeps.ctx, existing.ID, "cancelled").Return(nil).Times(1)

		booking, err := testDeps.service.CancelBooking(testDeps.ctx, "ann@x.com", existing.ID)

		require.Nil(t, err)
		require.Equal(t, "cancelled", booking.Status)
	})

	t.Run("idempotent on cancelled booking", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		cancelled := existing
		cancelled.Status = "cancelled"

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, cancelled.ID).Return(cancelled, nil).Times(1)
		testDeps.repo.EXPECT().SetBookingStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		booking, err := testDeps.service.CancelBooking(testDeps.ctx, "ann@x.com", cancelled.ID)

		require.Nil(t, err)
		require.Equal(t, "cancelled", booking.Status)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, "BK00000000").Return(bk.Booking{}, bk.ErrBookingNotFound).Times(1)
		testDeps.repo.EXPECT().SetBookingStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.CancelBooking(testDeps.ctx, "ann@x.com", "BK00000000")

		require.ErrorIs(t, err, bk.ErrBookingNotFound)
	})

	t.Run("not allowed", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().SetBookingStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.CancelBooking(testDeps.ctx, "bob@x.com", existing.ID)

		require.ErrorIs(t, err, bk.ErrNotAllowed)
	})

	t.Run("repo error SetBookingStatus", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookingByID(testDeps.ctx, existing.ID).Return(existing, nil).Times(1)
		testDeps.repo.EXPECT().SetBookingStatus(testDeps.ctx, existing.ID, "cancelled").Return(errors.New("repo error")).Times(1)

		_, err := testDeps.service.CancelBooking(testDeps.ctx, "ann@x.com", existing.ID)

		require.Error(t, err)
	})
}

func TestAvailableSlots(t *testing.T) {

	t.Run("empty day has the full grid", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookedTimes(testDeps.ctx, "2024-05-01").Return(nil, nil).Times(1)

		slots, err := testDeps.service.AvailableSlots(testDeps.ctx, "2024-05-01")

		require.Nil(t, err)
		require.Equal(t, bk.BusinessSlots(), slots)
	})

	t.Run("booked times are excluded", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookedTimes(testDeps.ctx, "2024-05-01").Return([]string{"10:00", "19:30"}, nil).Times(1)

		slots, err := testDeps.service.AvailableSlots(testDeps.ctx, "2024-05-01")

		require.Nil(t, err)
		require.Len(t, slots, 22)
		require.NotContains(t, slots, "10:00")
		require.NotContains(t, slots, "19:30")
		require.Contains(t, slots, "10:30")
	})

	t.Run("bad date", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookedTimes(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.AvailableSlots(testDeps.ctx, "yesterday")

		var validationErr *bk.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "date", validationErr.Field)
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().GetBookedTimes(testDeps.ctx, "2024-05-01").Return(nil, errors.New("repo error")).Times(1)

		_, err := testDeps.service.AvailableSlots(testDeps.ctx, "2024-05-01")

		require.Error(t, err)
	})
}

func TestCatalog(t *testing.T) {
	ctrl, testDeps := newTestDeps(t)
	defer ctrl.Finish()

	services := testDeps.service.Catalog()

	require.Len(t, services, 3)
	require.Equal(t, "room", services[0].ID)
	require.Equal(t, "meeting", services[1].ID)
	require.Equal(t, "spa", services[2].ID)
}
