package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentroute/backend/internal/models"
	"github.com/agentroute/backend/internal/service"
)

// @Summary Get route priorities
// @Tags priorities
// @Produce json
// @Success 200 {object} models.PrioritySettings
// @Router /api/priorities [get]
func (h *Handler) GetPriorities(c *gin.Context) {
	saved, err := h.Store.GetPriorities(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load priorities", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.PrioritySettings{Priorities: service.NormalizePriorities(saved)})
}

// @Summary Update route priorities
// @Description The submitted order is preserved verbatim; it encodes tie-break priority.
// @Tags priorities
// @Accept json
// @Produce json
// @Param settings body models.PrioritySettings true "priorities"
// @Success 200 {object} models.PrioritySettings
// @Failure 400 {object} map[string]any
// @Router /api/priorities [put]
func (h *Handler) UpdatePriorities(c *gin.Context) {
	var req models.PrioritySettings
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return
	}

	if err := service.ValidatePriorities(req.Priorities); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, gin.H{"field": verr.Field})
			return
		}
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.Store.UpsertPriorities(c.Request.Context(), userID(c), req.Priorities); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save priorities", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.PrioritySettings{Priorities: req.Priorities})
}

// @Summary Optimize the day's route
// @Description Orders the date's appointments by the user's weighted criteria and estimates travel.
// @Tags routes
// @Produce json
// @Param date query string true "date (YYYY-MM-DD)"
// @Param day_start query string false "day start clock time (HH:MM)"
// @Success 200 {object} models.OptimizedRoute
// @Failure 400 {object} map[string]any
// @Router /api/optimize-route [post]
func (h *Handler) OptimizeRoute(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "date query parameter required", nil)
		return
	}
	user := userID(c)

	appts, err := h.Store.ListAppointments(c.Request.Context(), user, date)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load appointments", err.Error())
		return
	}
	priorities, err := h.Store.GetPriorities(c.Request.Context(), user)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load priorities", err.Error())
		return
	}

	dayStart := c.Query("day_start")
	if dayStart == "" {
		dayStart = h.DayStart
	}

	route := service.ComputeRoute(dayStart, appts, priorities)
	if len(route.MissingCoordinateIDs) > 0 {
		h.Logger.Warn().
			Str("date", date).
			Strs("appointment_ids", route.MissingCoordinateIDs).
			Msg("route computed with fallback distances for unvalidated addresses")
	}
	c.JSON(http.StatusOK, route)
}

// @Summary Dashboard stats
// @Tags dashboard
// @Produce json
// @Param date query string false "limit appointment counts to one date"
// @Success 200 {object} map[string]any
// @Router /api/dashboard/stats [get]
func (h *Handler) DashboardStats(c *gin.Context) {
	user := userID(c)
	date := c.Query("date")

	appts, err := h.Store.ListAppointments(c.Request.Context(), user, date)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load appointments", err.Error())
		return
	}
	clients, err := h.Store.CountClients(c.Request.Context(), user)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to count clients", err.Error())
		return
	}

	openHouses := 0
	for _, a := range appts {
		if a.IsOpenHouse {
			openHouses++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"total_appointments": len(appts),
		"open_houses":        openHouses,
		"private_viewings":   len(appts) - openHouses,
		"total_clients":      clients,
	})
}
