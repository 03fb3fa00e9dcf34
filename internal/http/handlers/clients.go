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

type ClientRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	PhoneType      string `json:"phone_type" validate:"required,oneof=apple android"`
	Email          string `json:"email" validate:"required,email"`
	CurrentAddress string `json:"current_address" validate:"required"`
}

// @Summary Create client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body ClientRequest true "client"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]any
// @Router /api/clients [post]
func (h *Handler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid client payload", err.Error())
		return
	}

	client := models.Client{
		ID:             uuid.NewString(),
		UserID:         userID(c),
		Name:           req.Name,
		Phone:          req.Phone,
		PhoneType:      models.PhoneType(req.PhoneType),
		Email:          req.Email,
		CurrentAddress: req.CurrentAddress,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Store.InsertClient(c.Request.Context(), client); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create client", err.Error())
		return
	}
	c.JSON(http.StatusCreated, client)
}

// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} models.Client
// @Router /api/clients [get]
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.Store.ListClients(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list clients", err.Error())
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// @Summary Get client
// @Tags clients
// @Produce json
// @Param id path string true "client id"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]any
// @Router /api/clients/{id} [get]
func (h *Handler) GetClient(c *gin.Context) {
	client, err := h.Store.GetClient(c.Request.Context(), userID(c), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get client", err.Error())
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary Update client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "client id"
// @Param client body ClientRequest true "client"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]any
// @Router /api/clients/{id} [put]
func (h *Handler) UpdateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid client payload", err.Error())
		return
	}

	client := models.Client{
		ID:             c.Param("id"),
		UserID:         userID(c),
		Name:           req.Name,
		Phone:          req.Phone,
		PhoneType:      models.PhoneType(req.PhoneType),
		Email:          req.Email,
		CurrentAddress: req.CurrentAddress,
	}
	updated, err := h.Store.UpdateClient(c.Request.Context(), client)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update client", err.Error())
		return
	}
	if !updated {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
		return
	}
	fresh, err := h.Store.GetClient(c.Request.Context(), client.UserID, client.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load client", err.Error())
		return
	}
	c.JSON(http.StatusOK, fresh)
}

// @Summary Delete client
// @Tags clients
// @Produce json
// @Param id path string true "client id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/clients/{id} [delete]
func (h *Handler) DeleteClient(c *gin.Context) {
	deleted, err := h.Store.DeleteClient(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete client", err.Error())
		return
	}
	if !deleted {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
