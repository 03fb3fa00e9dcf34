package models

import "time"

type PhoneType string

const (
	PhoneApple   PhoneType = "apple"
	PhoneAndroid PhoneType = "android"
)

type HouseStatus string

const (
	HouseAvailable HouseStatus = "available"
	HousePending   HouseStatus = "pending"
	HouseSold      HouseStatus = "sold"
	HouseOffMarket HouseStatus = "off_market"
	HouseOpenHouse HouseStatus = "open_house"
)

type AppointmentType string

const (
	TypeOpenHouse      AppointmentType = "open_house"
	TypePrivateViewing AppointmentType = "private_viewing"
	TypeConsultation   AppointmentType = "consultation"
)

type Client struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	PhoneType      PhoneType `json:"phone_type"`
	Email          string    `json:"email"`
	CurrentAddress string    `json:"current_address"`
	CreatedAt      time.Time `json:"created_at"`
}

// Coordinates is a validated geocode result. Appointments whose address was
// never validated carry nil Latitude/Longitude.
type Coordinates struct {
	Lat float64
	Lon float64
}

type Appointment struct {
	ID              string          `json:"id"`
	UserID          string          `json:"-"`
	ClientID        string          `json:"client_id"`
	PropertyAddress string          `json:"property_address"`
	City            string          `json:"city"`
	Date            string          `json:"date"`       // YYYY-MM-DD
	StartTime       string          `json:"start_time"` // HH:MM, advisory slot
	EndTime         string          `json:"end_time"`
	TimeAtHouse     int             `json:"time_at_house"` // minutes on site
	IsOpenHouse     bool            `json:"is_open_house"`
	AppointmentType AppointmentType `json:"appointment_type"`
	HouseStatus     HouseStatus     `json:"house_status"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	OrderIndex      int             `json:"order_index"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Coords returns the validated coordinates, or nil when the address was
// never geocoded.
func (a Appointment) Coords() *Coordinates {
	if a.Latitude == nil || a.Longitude == nil {
		return nil
	}
	return &Coordinates{Lat: *a.Latitude, Lon: *a.Longitude}
}

type HouseNote struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	AppointmentID    string    `json:"appointment_id"`
	PropertyAddress  string    `json:"property_address"`
	Notes            string    `json:"notes"`
	FollowUpRequired bool      `json:"follow_up_required"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PriorityCriterion is one tunable ordering factor for the route optimizer.
// List position matters: earlier criteria win tie-breaks.
type PriorityCriterion struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Weight  int    `json:"weight"`
	Enabled bool   `json:"enabled"`
}

type PrioritySettings struct {
	UserID     string              `json:"-"`
	Priorities []PriorityCriterion `json:"priorities"`
}

type OptimizedRoute struct {
	Appointments          []Appointment `json:"appointments"`
	TotalEstimatedTime    int           `json:"total_estimated_time"`    // minutes
	TotalDistanceEstimate float64       `json:"total_distance_estimate"` // miles, 1 decimal
	FinishTimeEstimate    string        `json:"finish_time_estimate"`    // HH:MM
	MissingCoordinateIDs  []string      `json:"missing_coordinate_ids,omitempty"`
}
