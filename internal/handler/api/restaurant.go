package api

import (
	"context"
	"errors"
	"net/http"

	"tablebook/internal/domain/tenant"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestaurantLister interface {
	List(ctx context.Context) ([]*tenant.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Restaurant, error)
}

// RestaurantHandler serves the platform admin surface for tenant
// provisioning.
type RestaurantHandler struct {
	commands    commands.AdminCommands
	restaurants RestaurantLister
}

func NewRestaurantHandler(cmds commands.AdminCommands, restaurants RestaurantLister) *RestaurantHandler {
	return &RestaurantHandler{
		commands:    cmds,
		restaurants: restaurants,
	}
}

// @Summary List restaurants
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RestaurantResponse
// @Failure 403 {object} map[string]string
// @Router /admin/restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	list, err := h.restaurants.List(c.Request.Context())
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRestaurants(list))
}

// @Summary Get restaurant
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {object} resdto.RestaurantResponse
// @Failure 404 {object} map[string]string
// @Router /admin/restaurants/{id} [get]
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID format",
		})
		return
	}

	rest, err := h.restaurants.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Restaurant not found",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRestaurant(rest))
}

// @Summary Create restaurant
// @Description Provision a new tenant
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} resdto.RestaurantResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req reqdto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rest, err := h.commands.CreateRestaurant(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid restaurant slug",
			})
		case errors.Is(err, commands.ErrReservedSlug):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Slug is reserved",
			})
		case errors.Is(err, commands.ErrInvalidTimezone):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown timezone",
			})
		case errors.Is(err, commands.ErrDuplicateTenant):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slug or subdomain already taken",
			})
		default:
			internalError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRestaurant(rest))
}

// @Summary Update restaurant settings
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body reqdto.UpdateSettingsRequest true "Settings"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/restaurants/{id}/settings [put]
func (h *RestaurantHandler) UpdateSettings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID format",
		})
		return
	}

	var req reqdto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.commands.UpdateSettings(c.Request.Context(), id, req.Settings); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidTimezone):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown timezone",
			})
		case errors.Is(err, commands.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
		default:
			internalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Create reservation slot
// @Description Add a weekly template or date-override slot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body reqdto.SlotRequest true "Slot"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/restaurants/{id}/slots [post]
func (h *RestaurantHandler) CreateSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID format",
		})
		return
	}

	var req reqdto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	slot, err := h.commands.CreateSlot(c.Request.Context(), id, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid slot configuration",
			})
		case errors.Is(err, commands.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
		default:
			internalError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSlot(slot))
}

// @Summary Update reservation slot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param slotId path string true "Slot ID"
// @Param request body reqdto.SlotRequest true "Slot"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/restaurants/{id}/slots/{slotId} [put]
func (h *RestaurantHandler) UpdateSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID format",
		})
		return
	}
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot ID format",
		})
		return
	}

	var req reqdto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	slot, err := h.commands.UpdateSlot(c.Request.Context(), id, slotID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid slot configuration",
			})
		case errors.Is(err, commands.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		default:
			internalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlot(slot))
}
