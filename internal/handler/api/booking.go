package api

import (
	"errors"
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler serves the public guest-facing surface: availability,
// booking, payment return, and cancel-by-phone.
type BookingHandler struct {
	bookings     commands.BookingCommands
	availability queries.AvailabilityQueries
}

func NewBookingHandler(bookings commands.BookingCommands, availability queries.AvailabilityQueries) *BookingHandler {
	return &BookingHandler{
		bookings:     bookings,
		availability: availability,
	}
}

// @Summary List availability
// @Description List bookable slots and remaining capacity for a date
// @Tags public
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /{slug}/availability [get]
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	date := c.Query("date")
	slots, err := h.availability.ListSlots(c.Request.Context(), rest, date)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date, want YYYY-MM-DD",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotAvailability(date, slots))
}

// @Summary Create booking
// @Description Book a table as a guest
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /{slug}/reservations [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookings.CreateBooking(c.Request.Context(), rest, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking request failed validation",
			})
		case errors.Is(err, commands.ErrOccasionNotAllowed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Occasion not offered by this restaurant",
			})
		case errors.Is(err, commands.ErrNoSlotForTime):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No bookable slot covers the requested time",
			})
		case errors.Is(err, commands.ErrSlotFull):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is fully booked",
			})
		case errors.Is(err, commands.ErrCheckoutFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment checkout could not be started",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

// @Summary Payment return
// @Description Confirm a draft booking after successful checkout
// @Tags public
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /{slug}/reservations/{id}/payment-return [post]
func (h *BookingHandler) PaymentReturn(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	result, err := h.bookings.CompletePayment(c.Request.Context(), rest, id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationLookup):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrNotConfirmable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation is not awaiting payment",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingResult(result))
}

// @Summary Cancel by phone
// @Description Cancel the guest's next upcoming reservation by phone number
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param request body reqdto.CancelByPhoneRequest true "Cancel request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /{slug}/reservations/cancel [post]
func (h *BookingHandler) CancelByPhone(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CancelByPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.bookings.CancelByPhone(c.Request.Context(), rest, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid phone number",
			})
		case errors.Is(err, commands.ErrReservationLookup):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No upcoming reservation for this phone number",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservationId": id.String(),
		"status":        "cancelled",
	})
}
