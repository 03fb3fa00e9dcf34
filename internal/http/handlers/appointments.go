package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agentroute/backend/internal/models"
)

type AppointmentRequest struct {
	ClientID        string   `json:"client_id" validate:"required"`
	PropertyAddress string   `json:"property_address" validate:"required"`
	City            string   `json:"city" validate:"required"`
	Date            string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string   `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string   `json:"end_time" validate:"required,datetime=15:04"`
	TimeAtHouse     int      `json:"time_at_house" validate:"required,gt=0"`
	IsOpenHouse     bool     `json:"is_open_house"`
	AppointmentType string   `json:"appointment_type" validate:"omitempty,oneof=open_house private_viewing consultation"`
	HouseStatus     string   `json:"house_status" validate:"omitempty,oneof=available pending sold off_market open_house"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
}

func (r AppointmentRequest) toModel(id, user string) models.Appointment {
	apptType := models.AppointmentType(r.AppointmentType)
	if r.AppointmentType == "" {
		apptType = models.TypePrivateViewing
	}
	status := models.HouseStatus(r.HouseStatus)
	if r.HouseStatus == "" {
		status = models.HouseAvailable
	}
	return models.Appointment{
		ID:              id,
		UserID:          user,
		ClientID:        r.ClientID,
		PropertyAddress: r.PropertyAddress,
		City:            r.City,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		TimeAtHouse:     r.TimeAtHouse,
		IsOpenHouse:     r.IsOpenHouse,
		AppointmentType: apptType,
		HouseStatus:     status,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
	}
}

func (h *Handler) bindAppointment(c *gin.Context) (AppointmentRequest, bool) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return req, false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid appointment payload", err.Error())
		return req, false
	}
	// A coordinate pair is all or nothing; a lone latitude is useless.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "latitude and longitude must be set together", nil)
		return req, false
	}
	return req, true
}

// @Summary Create appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body AppointmentRequest true "appointment"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/appointments [post]
func (h *Handler) CreateAppointment(c *gin.Context) {
	req, ok := h.bindAppointment(c)
	if !ok {
		return
	}
	user := userID(c)

	if _, err := h.Store.GetClient(c.Request.Context(), user, req.ClientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to verify client", err.Error())
		return
	}

	appt := req.toModel(uuid.NewString(), user)
	appt.CreatedAt = time.Now().UTC()
	if err := h.Store.InsertAppointment(c.Request.Context(), appt); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create appointment", err.Error())
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// @Summary List appointments
// @Tags appointments
// @Produce json
// @Param date query string false "filter by date (YYYY-MM-DD)"
// @Success 200 {array} models.Appointment
// @Router /api/appointments [get]
func (h *Handler) ListAppointments(c *gin.Context) {
	appts, err := h.Store.ListAppointments(c.Request.Context(), userID(c), c.Query("date"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list appointments", err.Error())
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Param id path string true "appointment id"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} map[string]any
// @Router /api/appointments/{id} [get]
func (h *Handler) GetAppointment(c *gin.Context) {
	appt, err := h.Store.GetAppointment(c.Request.Context(), userID(c), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

// @Summary Update appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "appointment id"
// @Param appointment body AppointmentRequest true "appointment"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} map[string]any
// @Router /api/appointments/{id} [put]
func (h *Handler) UpdateAppointment(c *gin.Context) {
	req, ok := h.bindAppointment(c)
	if !ok {
		return
	}

	appt := req.toModel(c.Param("id"), userID(c))
	updated, err := h.Store.UpdateAppointment(c.Request.Context(), appt)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update appointment", err.Error())
		return
	}
	if !updated {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
		return
	}
	fresh, err := h.Store.GetAppointment(c.Request.Context(), appt.UserID, appt.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, fresh)
}

type HouseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available pending sold off_market open_house"`
}

// @Summary Update house status
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "appointment id"
// @Param status body HouseStatusRequest true "status"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/appointments/{id}/status [put]
func (h *Handler) UpdateHouseStatus(c *gin.Context) {
	var req HouseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status", err.Error())
		return
	}

	updated, err := h.Store.UpdateHouseStatus(c.Request.Context(), userID(c), c.Param("id"), models.HouseStatus(req.Status))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update status", err.Error())
		return
	}
	if !updated {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}

// @Summary Delete appointment
// @Tags appointments
// @Produce json
// @Param id path string true "appointment id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/appointments/{id} [delete]
func (h *Handler) DeleteAppointment(c *gin.Context) {
	deleted, err := h.Store.DeleteAppointment(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete appointment", err.Error())
		return
	}
	if !deleted {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
