package handlers

import (
	"tripdiary/internal/services"
)

// Handlers carries the services the HTTP layer calls into. Each request
// derives a copy tagged with its request id.
type Handlers struct {
	Trips       services.TripService
	Reports     services.ReportService
	PingMessage string
	StoreName   string
}
