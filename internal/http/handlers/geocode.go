package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentroute/backend/internal/geocode"
)

// @Summary Search addresses
// @Tags geocode
// @Produce json
// @Param q query string true "free-text address query"
// @Success 200 {array} geocode.Candidate
// @Failure 400 {object} map[string]any
// @Router /api/geocode/search [get]
func (h *Handler) GeocodeSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "q query parameter required", nil)
		return
	}

	candidates, err := h.Geocoder.Search(c.Request.Context(), query)
	if errors.Is(err, geocode.ErrNotFound) {
		c.JSON(http.StatusOK, []geocode.Candidate{})
		return
	}
	if err != nil {
		writeError(c, http.StatusBadGateway, "GEOCODER_ERROR", "Geocoding failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, candidates)
}

type ValidateAddressRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city"`
}

// @Summary Validate a property address
// @Tags geocode
// @Accept json
// @Produce json
// @Param address body ValidateAddressRequest true "address"
// @Success 200 {object} geocode.Validation
// @Failure 400 {object} map[string]any
// @Router /api/geocode/validate [post]
func (h *Handler) GeocodeValidate(c *gin.Context) {
	var req ValidateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid address payload", err.Error())
		return
	}

	v, err := h.Geocoder.Validate(c.Request.Context(), req.Address, req.City)
	if err != nil {
		writeError(c, http.StatusBadGateway, "GEOCODER_ERROR", "Geocoding failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, v)
}
