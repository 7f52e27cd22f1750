package api

import (
	"errors"
	"net/http"

	"tablebook/internal/domain/tenant"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReservationHandler serves the staff dashboard reservation lifecycle.
type ReservationHandler struct {
	commands     commands.ReservationCommands
	reservations queries.ReservationQueries
	messages     queries.MessageQueries
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	reservations queries.ReservationQueries,
	messages queries.MessageQueries,
) *ReservationHandler {
	return &ReservationHandler{
		commands:     cmds,
		reservations: reservations,
		messages:     messages,
	}
}

// @Summary List reservations for a day
// @Description List all reservations on one local calendar date
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /{slug}/dashboard/reservations [get]
func (h *ReservationHandler) ListForDay(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	views, err := h.reservations.ListForDay(c.Request.Context(), rest, c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date, want YYYY-MM-DD",
			})
		default:
			internalError(c)
		}
		return
	}

	response := make([]*resdto.ReservationResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromReservationView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /{slug}/dashboard/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.reservations.GetByID(c.Request.Context(), rest, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			internalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Confirm reservation
// @Description Manually confirm a draft reservation
// @Tags reservations
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /{slug}/dashboard/reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, rest *tenant.Restaurant, id uuid.UUID) error {
		return h.commands.Confirm(ctx.Request.Context(), rest, id)
	})
}

// @Summary Send message
// @Description Send a free-text SMS to the guest
// @Tags reservations
// @Accept json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.SendMessageRequest true "Message"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /{slug}/dashboard/reservations/{id}/message [post]
func (h *ReservationHandler) SendMessage(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.commands.SendMessage(c.Request.Context(), rest, id, req.Text); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationLookup):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation status does not allow messaging",
			})
		case errors.Is(err, commands.ErrMessageInvalid):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Message text rejected",
			})
		case errors.Is(err, commands.ErrMessageSendFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Message could not be delivered",
			})
		default:
			internalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Seat reservation
// @Description Seat the guest at a table
// @Tags reservations
// @Accept json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.SeatReservationRequest true "Table assignment"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /{slug}/dashboard/reservations/{id}/seat [post]
func (h *ReservationHandler) Seat(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.SeatReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.commands.Seat(c.Request.Context(), rest, id, req.TableID); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationLookup):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Table not found",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation status does not allow seating",
			})
		case errors.Is(err, commands.ErrTableTooSmall):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Table does not fit the party",
			})
		case errors.Is(err, commands.ErrTableOccupied):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Table is already occupied",
			})
		default:
			internalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel reservation
// @Tags reservations
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /{slug}/dashboard/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, rest *tenant.Restaurant, id uuid.UUID) error {
		return h.commands.Cancel(ctx.Request.Context(), rest, id)
	})
}

// @Summary List message history
// @Description List the SMS audit trail for a reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.MessageResponse
// @Router /{slug}/dashboard/reservations/{id}/messages [get]
func (h *ReservationHandler) ListMessages(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	views, err := h.messages.ListByReservation(c.Request.Context(), rest, id)
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMessageViews(views))
}

func (h *ReservationHandler) transition(c *gin.Context, fn func(*gin.Context, *tenant.Restaurant, uuid.UUID) error) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := fn(c, rest, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationLookup):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation status does not allow this action",
			})
		default:
			internalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
