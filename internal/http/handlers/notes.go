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

type HouseNoteRequest struct {
	AppointmentID    string `json:"appointment_id" validate:"required"`
	PropertyAddress  string `json:"property_address" validate:"required"`
	Notes            string `json:"notes" validate:"required"`
	FollowUpRequired bool   `json:"follow_up_required"`
}

// @Summary Create house note
// @Tags notes
// @Accept json
// @Produce json
// @Param note body HouseNoteRequest true "note"
// @Success 201 {object} models.HouseNote
// @Failure 400 {object} map[string]any
// @Router /api/notes [post]
func (h *Handler) CreateHouseNote(c *gin.Context) {
	var req HouseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid note payload", err.Error())
		return
	}

	now := time.Now().UTC()
	note := models.HouseNote{
		ID:               uuid.NewString(),
		UserID:           userID(c),
		AppointmentID:    req.AppointmentID,
		PropertyAddress:  req.PropertyAddress,
		Notes:            req.Notes,
		FollowUpRequired: req.FollowUpRequired,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.Store.InsertHouseNote(c.Request.Context(), note); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create note", err.Error())
		return
	}
	c.JSON(http.StatusCreated, note)
}

// @Summary List house notes
// @Tags notes
// @Produce json
// @Param appointment_id query string false "filter by appointment"
// @Success 200 {array} models.HouseNote
// @Router /api/notes [get]
func (h *Handler) ListHouseNotes(c *gin.Context) {
	notes, err := h.Store.ListHouseNotes(c.Request.Context(), userID(c), c.Query("appointment_id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list notes", err.Error())
		return
	}
	if notes == nil {
		notes = []models.HouseNote{}
	}
	c.JSON(http.StatusOK, notes)
}

// @Summary Get house note
// @Tags notes
// @Produce json
// @Param id path string true "note id"
// @Success 200 {object} models.HouseNote
// @Failure 404 {object} map[string]any
// @Router /api/notes/{id} [get]
func (h *Handler) GetHouseNote(c *gin.Context) {
	note, err := h.Store.GetHouseNote(c.Request.Context(), userID(c), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Note not found", nil)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get note", err.Error())
		return
	}
	c.JSON(http.StatusOK, note)
}

// @Summary Update house note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "note id"
// @Param note body HouseNoteRequest true "note"
// @Success 200 {object} models.HouseNote
// @Failure 404 {object} map[string]any
// @Router /api/notes/{id} [put]
func (h *Handler) UpdateHouseNote(c *gin.Context) {
	var req HouseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid note payload", err.Error())
		return
	}

	note := models.HouseNote{
		ID:               c.Param("id"),
		UserID:           userID(c),
		AppointmentID:    req.AppointmentID,
		PropertyAddress:  req.PropertyAddress,
		Notes:            req.Notes,
		FollowUpRequired: req.FollowUpRequired,
	}
	updated, err := h.Store.UpdateHouseNote(c.Request.Context(), note)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update note", err.Error())
		return
	}
	if !updated {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Note not found", nil)
		return
	}
	fresh, err := h.Store.GetHouseNote(c.Request.Context(), note.UserID, note.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load note", err.Error())
		return
	}
	c.JSON(http.StatusOK, fresh)
}

// @Summary Delete house note
// @Tags notes
// @Produce json
// @Param id path string true "note id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/notes/{id} [delete]
func (h *Handler) DeleteHouseNote(c *gin.Context) {
	deleted, err := h.Store.DeleteHouseNote(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete note", err.Error())
		return
	}
	if !deleted {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Note not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
