package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	bk "github.com/hanksha/hotel-booking-system-backend/booking"
	"github.com/hanksha/hotel-booking-system-backend/google"
)

type BookingService interface {
	ListBookings(ctx context.Context, callerEmail string) ([]bk.Booking, error)
	CreateBooking(ctx context.Context, callerEmail string, req bk.BookingRequest) (bk.Booking, error)
	ModifyBooking(ctx context.Context, callerEmail, id string, update bk.BookingUpdate) (bk.Booking, error)
	CancelBooking(ctx context.Context, callerEmail, id string) (bk.Booking, error)
	AvailableSlots(ctx context.Context, date string) ([]string, error)
	Catalog() []bk.ServiceInfo
}

type BookingHandler struct {
	service BookingService
}

func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.POST("/bookings", h.Create)
	rg.PUT("/bookings/:id", h.Modify)
	rg.DELETE("/bookings/:id", h.Cancel)

	rg.GET("/slots/:date", h.Slots)
	rg.GET("/services", h.Services)
}

func (h *BookingHandler) List(c *gin.Context) {
	user := c.MustGet("user").(google.GoogleUser)

	if bookings, err := h.service.ListBookings(c.Request.Context(), user.Email); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve bookings",
		})
	} else {
		c.IndentedJSON(http.StatusOK, bookings)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	user := c.MustGet("user").(google.GoogleUser)

	var req bk.BookingRequest

	if err := c.BindJSON(&req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	inserted, err := h.service.CreateBooking(c.Request.Context(), user.Email, req)

	if err != nil {
		c.Error(err)

		var validationErr *bk.ValidationError

		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		} else if errors.Is(err, bk.ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "this time slot is already booked"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}

		return
	}

	c.IndentedJSON(http.StatusCreated, inserted)
}

func (h *BookingHandler) Modify(c *gin.Context) {
	user := c.MustGet("user").(google.GoogleUser)
	id := c.Param("id")

	var update bk.BookingUpdate

	if err := c.BindJSON(&update); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	booking, err := h.service.ModifyBooking(c.Request.Context(), user.Email, id, update)

	if err != nil {
		c.Error(err)

		var validationErr *bk.ValidationError

		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else if errors.Is(err, bk.ErrNotAllowed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this booking"})
		} else if errors.Is(err, bk.ErrBookingCancelled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "booking is cancelled"})
		} else if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		} else if errors.Is(err, bk.ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "this time slot is already booked"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to modify booking"})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	user := c.MustGet("user").(google.GoogleUser)
	id := c.Param("id")

	booking, err := h.service.CancelBooking(c.Request.Context(), user.Email, id)

	if err != nil {
		c.Error(err)

		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else if errors.Is(err, bk.ErrNotAllowed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to cancel this booking"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}

func (h *BookingHandler) Slots(c *gin.Context) {
	date := c.Param("date")

	slots, err := h.service.AvailableSlots(c.Request.Context(), date)

	if err != nil {
		c.Error(err)

		var validationErr *bk.ValidationError

		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get available slots"})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, slots)
}

func (h *BookingHandler) Services(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, h.service.Catalog())
}
