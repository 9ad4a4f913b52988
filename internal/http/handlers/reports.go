package handlers

import (
	"net/http"

	"tripdiary/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/trips.pdf
func (h Handlers) GetTripsReportPDF(c *gin.Context) {
	svc := h.Reports
	svc.RequestID = middleware.GetRequestID(c)

	pdfBytes, filename, err := svc.TripsPDF(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
