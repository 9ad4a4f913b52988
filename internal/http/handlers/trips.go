package handlers

import (
	"net/http"

	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"
	"tripdiary/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/trips
func (h Handlers) GetTrips(c *gin.Context) {
	svc := h.Trips.WithRequestID(middleware.GetRequestID(c))
	trips, err := svc.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TripsResponse{Trips: trips})
}

// GET /api/trips/:id
func (h Handlers) GetTrip(c *gin.Context) {
	svc := h.Trips.WithRequestID(middleware.GetRequestID(c))
	trip, err := svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips
func (h Handlers) CreateTrip(c *gin.Context) {
	var payload domain.TripPayload
	if err := bindJSON(c, &payload); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := h.Trips.WithRequestID(middleware.GetRequestID(c))
	trip, err := svc.Upsert(c.Request.Context(), payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreateTripResponse{Success: true, ID: trip.ID})
}

// POST /api/trips/bulk
func (h Handlers) BulkTrips(c *gin.Context) {
	var payload domain.BulkPayload
	if err := bindJSON(c, &payload); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := h.Trips.WithRequestID(middleware.GetRequestID(c))
	ids, err := svc.BulkUpsert(c.Request.Context(), payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SyncTripsResponse{Success: true, SyncedIDs: ids})
}

// DELETE /api/trips/:id
func (h Handlers) DeleteTrip(c *gin.Context) {
	svc := h.Trips.WithRequestID(middleware.GetRequestID(c))
	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
