package models

import (
	"slices"
	"time"
)

// Mode is the transport mode of a trip. The set of values is closed.
type Mode string

const (
	ModeWalk       Mode = "walk"
	ModeBicycle    Mode = "bicycle"
	ModeTwoWheeler Mode = "two_wheeler"
	ModeCar        Mode = "car"
	ModeBus        Mode = "bus"
	ModeMetroTrain Mode = "metro_train"
	ModeAutoTaxi   Mode = "auto_taxi"
	ModeRideshare  Mode = "rideshare"
	ModeOther      Mode = "other"
)

var modeLabels = map[Mode]string{
	ModeWalk:       "Walk",
	ModeBicycle:    "Bicycle",
	ModeTwoWheeler: "Two-wheeler",
	ModeCar:        "Car",
	ModeBus:        "Bus",
	ModeMetroTrain: "Metro / Train",
	ModeAutoTaxi:   "Auto / Taxi",
	ModeRideshare:  "Rideshare",
	ModeOther:      "Other",
}

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{
		ModeWalk, ModeBicycle, ModeTwoWheeler, ModeCar, ModeBus,
		ModeMetroTrain, ModeAutoTaxi, ModeRideshare, ModeOther,
	}
}

func (m Mode) Valid() bool {
	return slices.Contains(Modes(), m)
}

// Label is the human readable name shown in lists and reports.
func (m Mode) Label() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return string(m)
}

// Companion is a person travelling with the diarist. It has no lifecycle of
// its own outside the parent Trip.
type Companion struct {
	ID           string  `json:"id"`
	Name         *string `json:"name,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
}

// Trip is one recorded journey.
type Trip struct {
	ID             string      `json:"id"`
	TripNumber     int         `json:"tripNumber"`
	Origin         string      `json:"origin"`
	OriginLat      *float64    `json:"originLat,omitempty"`
	OriginLng      *float64    `json:"originLng,omitempty"`
	Destination    string      `json:"destination"`
	DestinationLat *float64    `json:"destinationLat,omitempty"`
	DestinationLng *float64    `json:"destinationLng,omitempty"`
	Mode           Mode        `json:"mode"`
	DepartureTime  time.Time   `json:"departureTime"`
	Companions     []Companion `json:"companions"`
	ConsentGiven   bool        `json:"consentGiven"`
	Notes          *string     `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	SyncedAt       *time.Time  `json:"syncedAt,omitempty"`
}

// Synced reports whether a server accept has been observed for the trip.
func (t Trip) Synced() bool {
	return t.SyncedAt != nil
}

// SyncTripsRequest is the body of POST /api/trips/bulk.
type SyncTripsRequest struct {
	Trips []Trip `json:"trips"`
}

// SyncTripsResponse lists the ids the server accepted from a bulk request.
type SyncTripsResponse struct {
	Success   bool     `json:"success"`
	SyncedIDs []string `json:"syncedIds"`
	Message   string   `json:"message,omitempty"`
}

type TripsResponse struct {
	Trips []Trip `json:"trips"`
}

type CreateTripResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type PingResponse struct {
	Message string `json:"message"`
}
