package api

import (
	"errors"
	"net/http"

	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TableHandler struct {
	tables   queries.TableQueries
	commands commands.ReservationCommands
}

func NewTableHandler(tables queries.TableQueries, cmds commands.ReservationCommands) *TableHandler {
	return &TableHandler{
		tables:   tables,
		commands: cmds,
	}
}

// @Summary List tables
// @Description List the floor view with live occupancy
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Success 200 {array} resdto.TableResponse
// @Failure 401 {object} map[string]string
// @Router /{slug}/dashboard/tables [get]
func (h *TableHandler) List(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	views, err := h.tables.List(c.Request.Context(), rest)
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTableViews(views))
}

// @Summary Free table
// @Description Clear a table's occupancy after guests leave
// @Tags tables
// @Security BearerAuth
// @Param slug path string true "Restaurant slug"
// @Param id path string true "Table ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /{slug}/dashboard/tables/{id}/free [post]
func (h *TableHandler) Free(c *gin.Context) {
	rest, ok := middleware.GetRestaurant(c)
	if !ok {
		internalError(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid table ID format",
		})
		return
	}

	if err := h.commands.FreeTable(c.Request.Context(), rest, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Table not found",
			})
		default:
			internalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
