package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agentroute/backend/internal/models"
)

type ImportSummary struct {
	Clients struct {
		Parsed   int `json:"parsed"`
		Inserted int `json:"inserted"`
		Errors   int `json:"errors"`
	} `json:"clients"`
	Appointments struct {
		Parsed   int `json:"parsed"`
		Inserted int `json:"inserted"`
		Errors   int `json:"errors"`
	} `json:"appointments"`
	Errors []string `json:"errors"`
}

// @Summary Bulk import CSV data
// @Description Upload clients and appointments CSV files
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param clients formData file true "clients.csv"
// @Param appointments formData file true "appointments.csv"
// @Success 200 {object} ImportSummary
// @Failure 400 {object} map[string]any
// @Router /api/import [post]
func (h *Handler) Import(c *gin.Context) {
	clientsFile, err := c.FormFile("clients")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "clients file required", nil)
		return
	}
	apptsFile, err := c.FormFile("appointments")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "appointments file required", nil)
		return
	}
	if !validateExt(clientsFile.Filename) || !validateExt(apptsFile.Filename) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "all files must be .csv", nil)
		return
	}

	user := userID(c)
	summary := ImportSummary{Errors: []string{}}

	clients, errs := parseClientsCSV(clientsFile, user)
	summary.Clients.Parsed = len(clients)
	summary.Clients.Errors = len(errs)
	summary.Errors = append(summary.Errors, errs...)

	appts, errs := parseAppointmentsCSV(apptsFile, user)
	summary.Appointments.Parsed = len(appts)
	summary.Appointments.Errors = len(errs)
	summary.Errors = append(summary.Errors, errs...)

	if len(summary.Errors) > 0 {
		writeError(c, http.StatusBadRequest, "CSV_PARSE_ERROR", "CSV validation errors", summary.Errors)
		return
	}

	ctx := c.Request.Context()
	inserted, err := h.Store.BulkInsertClients(ctx, clients)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to insert clients", err.Error())
		return
	}
	summary.Clients.Inserted = int(inserted)

	inserted, err = h.Store.BulkInsertAppointments(ctx, appts)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to insert appointments", err.Error())
		return
	}
	summary.Appointments.Inserted = int(inserted)

	c.JSON(http.StatusOK, summary)
}

func validateExt(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".csv")
}

// clients.csv columns: name,phone,phone_type,email,current_address
func parseClientsCSV(file *multipart.FileHeader, user string) ([]models.Client, []string) {
	records, errs := readCSV(file, []string{"name", "phone", "phone_type", "email", "current_address"})
	if len(errs) > 0 {
		return nil, errs
	}

	now := time.Now().UTC()
	out := make([]models.Client, 0, len(records))
	for i, rec := range records {
		phoneType := models.PhoneType(strings.ToLower(strings.TrimSpace(rec["phone_type"])))
		if phoneType != models.PhoneApple && phoneType != models.PhoneAndroid {
			errs = append(errs, fmt.Sprintf("clients row %d: bad phone_type %q", i+2, rec["phone_type"]))
			continue
		}
		out = append(out, models.Client{
			ID:             uuid.NewString(),
			UserID:         user,
			Name:           strings.TrimSpace(rec["name"]),
			Phone:          strings.TrimSpace(rec["phone"]),
			PhoneType:      phoneType,
			Email:          strings.TrimSpace(rec["email"]),
			CurrentAddress: strings.TrimSpace(rec["current_address"]),
			CreatedAt:      now,
		})
	}
	return out, errs
}

// appointments.csv columns: client_id,property_address,city,date,start_time,
// end_time,time_at_house,is_open_house,latitude,longitude (last three optional)
func parseAppointmentsCSV(file *multipart.FileHeader, user string) ([]models.Appointment, []string) {
	records, errs := readCSV(file, []string{"client_id", "property_address", "city", "date", "start_time", "end_time", "time_at_house"})
	if len(errs) > 0 {
		return nil, errs
	}

	now := time.Now().UTC()
	out := make([]models.Appointment, 0, len(records))
	for i, rec := range records {
		row := i + 2
		timeAtHouse, err := strconv.Atoi(strings.TrimSpace(rec["time_at_house"]))
		if err != nil || timeAtHouse <= 0 {
			errs = append(errs, fmt.Sprintf("appointments row %d: bad time_at_house %q", row, rec["time_at_house"]))
			continue
		}

		isOpenHouse := strings.EqualFold(strings.TrimSpace(rec["is_open_house"]), "true")

		var lat, lon *float64
		latRaw := strings.TrimSpace(rec["latitude"])
		lonRaw := strings.TrimSpace(rec["longitude"])
		if latRaw != "" && lonRaw != "" {
			latVal, latErr := strconv.ParseFloat(latRaw, 64)
			lonVal, lonErr := strconv.ParseFloat(lonRaw, 64)
			if latErr != nil || lonErr != nil {
				errs = append(errs, fmt.Sprintf("appointments row %d: bad coordinates %q,%q", row, latRaw, lonRaw))
				continue
			}
			lat, lon = &latVal, &lonVal
		}

		appt := models.Appointment{
			ID:              uuid.NewString(),
			UserID:          user,
			ClientID:        strings.TrimSpace(rec["client_id"]),
			PropertyAddress: strings.TrimSpace(rec["property_address"]),
			City:            strings.TrimSpace(rec["city"]),
			Date:            strings.TrimSpace(rec["date"]),
			StartTime:       strings.TrimSpace(rec["start_time"]),
			EndTime:         strings.TrimSpace(rec["end_time"]),
			TimeAtHouse:     timeAtHouse,
			IsOpenHouse:     isOpenHouse,
			AppointmentType: models.TypePrivateViewing,
			HouseStatus:     models.HouseAvailable,
			Latitude:        lat,
			Longitude:       lon,
			CreatedAt:       now,
		}
		if isOpenHouse {
			appt.AppointmentType = models.TypeOpenHouse
		}
		out = append(out, appt)
	}
	return out, errs
}

// readCSV returns one map per data row keyed by header name, after checking
// the required columns are present.
func readCSV(file *multipart.FileHeader, required []string) ([]map[string]string, []string) {
	f, err := file.Open()
	if err != nil {
		return nil, []string{err.Error()}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, []string{fmt.Sprintf("%s: read header: %v", file.Filename, err)}
	}
	index := map[string]int{}
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, []string{fmt.Sprintf("%s: missing column %q", file.Filename, col)}
		}
	}

	var out []map[string]string
	var errs []string
	for row := 2; ; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s row %d: %v", file.Filename, row, err))
			continue
		}
		m := map[string]string{}
		for col, i := range index {
			if i < len(rec) {
				m[col] = rec[i]
			}
		}
		out = append(out, m)
	}
	return out, errs
}
