package booking

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hanksha/hotel-booking-system-backend/metrics"
)

type BookingRepository interface {
	GetBookingsForEmail(ctx context.Context, email string) ([]Booking, error)
	GetBookingByID(ctx context.Context, id string) (Booking, error)
	GetBookedTimes(ctx context.Context, date string) ([]string, error)
	InsertBooking(ctx context.Context, booking Booking) (Booking, error)
	UpdateBooking(ctx context.Context, booking Booking) error
	SetBookingStatus(ctx context.Context, id string, status string) error
}

type Service struct {
	repo BookingRepository
}

func NewService(repo BookingRepository) *Service {
	return &Service{repo: repo}
}

// ListBookings returns the active bookings the caller may see: the ones
// it owns, plus legacy rows without an owner whose contact email matches.
func (s *Service) ListBookings(ctx context.Context, callerEmail string) ([]Booking, error) {
	return s.repo.GetBookingsForEmail(ctx, callerEmail)
}

func (s *Service) CreateBooking(ctx context.Context, callerEmail string, req BookingRequest) (Booking, error) {
	if err := validateRequest(req); err != nil {
		return Booking{}, err
	}

	booking := Booking{
		ID:         newBookingID(),
		Service:    req.Service,
		Date:       req.Date,
		Time:       req.Time,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Notes:      req.Notes,
		Status:     StatusConfirmed,
		OwnerEmail: callerEmail,
	}

	inserted, err := s.repo.InsertBooking(ctx, booking)

	if errors.Is(err, ErrSlotTaken) {
		metrics.IncSlotConflicts()
		return Booking{}, err
	}

	if err != nil {
		return Booking{}, err
	}

	metrics.IncBookingsCreated(inserted.Service)

	return inserted, nil
}

func (s *Service) ModifyBooking(ctx context.Context, callerEmail, id string, update BookingUpdate) (Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)

	if err != nil {
		return Booking{}, err
	}

	if !callerAllowed(booking, callerEmail) {
		return Booking{}, ErrNotAllowed
	}

	if booking.Status == StatusCancelled {
		return Booking{}, ErrBookingCancelled
	}

	if err := applyUpdate(&booking, update); err != nil {
		return Booking{}, err
	}

	err = s.repo.UpdateBooking(ctx, booking)

	if errors.Is(err, ErrSlotTaken) {
		metrics.IncSlotConflicts()
		return Booking{}, err
	}

	if err != nil {
		return Booking{}, err
	}

	return booking, nil
}

// CancelBooking soft-deletes a booking. Cancelling an already cancelled
// booking is a no-op and succeeds.
func (s *Service) CancelBooking(ctx context.Context, callerEmail, id string) (Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)

	if err != nil {
		return Booking{}, err
	}

	if !callerAllowed(booking, callerEmail) {
		return Booking{}, ErrNotAllowed
	}

	if booking.Status == StatusCancelled {
		return booking, nil
	}

	if err := s.repo.SetBookingStatus(ctx, id, StatusCancelled); err != nil {
		return Booking{}, err
	}

	booking.Status = StatusCancelled
	metrics.IncBookingsCancelled()

	return booking, nil
}

// AvailableSlots returns the business-hour slots of a date that are not
// taken by an active booking.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	if !isValidDate(date) {
		return nil, &ValidationError{Field: "date"}
	}

	booked, err := s.repo.GetBookedTimes(ctx, date)

	if err != nil {
		return nil, err
	}

	available := []string{}

	for _, slot := range BusinessSlots() {
		if !slices.Contains(booked, slot) {
			available = append(available, slot)
		}
	}

	return available, nil
}

func (s *Service) Catalog() []ServiceInfo {
	return Catalog()
}

// callerAllowed is the ownership rule: the owner may act on a booking,
// and for legacy rows without an owner the contact email stands in.
func callerAllowed(booking Booking, callerEmail string) bool {
	if booking.OwnerEmail != "" {
		return booking.OwnerEmail == callerEmail
	}

	return booking.Email == callerEmail
}

func validateRequest(req BookingRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"service", req.Service},
		{"date", req.Date},
		{"time", req.Time},
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
	}

	for _, r := range required {
		if len(strings.TrimSpace(r.value)) == 0 {
			return &ValidationError{Field: r.field}
		}
	}

	if !isValidDate(req.Date) {
		return &ValidationError{Field: "date"}
	}

	if !isBusinessSlot(req.Time) {
		return &ValidationError{Field: "time"}
	}

	return nil
}

func applyUpdate(booking *Booking, update BookingUpdate) error {
	set := func(field string, dst *string, src *string) error {
		if src == nil {
			return nil
		}

		if len(strings.TrimSpace(*src)) == 0 {
			return &ValidationError{Field: field}
		}

		*dst = *src

		return nil
	}

	if err := set("service", &booking.Service, update.Service); err != nil {
		return err
	}

	if err := set("date", &booking.Date, update.Date); err != nil {
		return err
	}

	if err := set("time", &booking.Time, update.Time); err != nil {
		return err
	}

	if err := set("name", &booking.Name, update.Name); err != nil {
		return err
	}

	if err := set("email", &booking.Email, update.Email); err != nil {
		return err
	}

	if err := set("phone", &booking.Phone, update.Phone); err != nil {
		return err
	}

	// Notes may be cleared, so the empty string is fine here.
	if update.Notes != nil {
		booking.Notes = *update.Notes
	}

	if update.Date != nil && !isValidDate(booking.Date) {
		return &ValidationError{Field: "date"}
	}

	if update.Time != nil && !isBusinessSlot(booking.Time) {
		return &ValidationError{Field: "time"}
	}

	return nil
}

func isValidDate(date string) bool {
	_, err := time.Parse(time.DateOnly, date)

	return err == nil
}

// newBookingID generates ids in the historical format: "BK" followed by
// the first 8 hex characters of a UUID, upper-cased.
func newBookingID() string {
	return "BK" + strings.ToUpper(uuid.NewString()[:8])
}
