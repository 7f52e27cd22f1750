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

type WaitlistHandler struct {
	commands commands.WaitlistCommands
	waitlist queries.WaitlistQueries
}

func NewWaitlistHandler(cmds commands.WaitlistCommands, waitlist queries.WaitlistQueries) *WaitlistHandler {
	return &WaitlistHandler{
		commands: cmds,
		waitlist: waitlist,
	}
}

// @Summary List waitlist
// @Description List waiting and notified walk-in entries in arrival order
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Success 200 {array} resdto.WaitlistEntryResponse
// @Router /{slug}/dashboard/waitlist [get]
func (h *WaitlistHandler) List(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	views, err := h.waitlist.ListActive(c.Request.Context(), rest)
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWaitlistViews(views))
}

// @Summary Join waitlist
// @Description Add a walk-in guest to the waitlist
// @Tags waitlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param request body reqdto.JoinWaitlistRequest true "Waitlist entry"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /{slug}/dashboard/waitlist [post]
func (h *WaitlistHandler) Join(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	var req reqdto.JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.commands.Join(c.Request.Context(), rest, req.Name, req.Phone, req.PartySize)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrWaitlistValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Waitlist entry rejected",
			})
		default:
			internalError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Advance waitlist entry
// @Description Move an entry to notified, seated or removed
// @Tags waitlist
// @Accept json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Entry ID"
// @Param request body reqdto.AdvanceWaitlistRequest true "Target status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /{slug}/dashboard/waitlist/{id} [patch]
func (h *WaitlistHandler) Advance(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid entry ID format",
		})
		return
	}

	var req reqdto.AdvanceWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	status, ok := req.ToStatus()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid target status",
		})
		return
	}

	if err := h.commands.Advance(c.Request.Context(), rest, id, status); err != nil {
		switch {
		case errors.Is(err, commands.ErrWaitlistNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Waitlist entry not found",
			})
		case errors.Is(err, commands.ErrWaitlistTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Entry status does not allow this change",
			})
		default:
			internalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
