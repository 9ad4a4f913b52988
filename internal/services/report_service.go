package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"tripdiary/internal/domain/models"
	"tripdiary/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TripLister is the read side ReportService needs.
type TripLister interface {
	List(ctx context.Context) ([]models.Trip, error)
}

// ReportService renders the stored trips as a printable PDF diary.
type ReportService struct {
	Trips     TripLister
	Location  *time.Location
	Now       func() time.Time
	RequestID string
}

func (s ReportService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// TripsPDF returns the PDF bytes and a download filename.
func (s ReportService) TripsPDF(ctx context.Context) ([]byte, string, error) {
	trips, err := s.Trips.List(ctx)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "trips_pdf", fmt.Sprintf("count=%d", len(trips)))

	generated := s.now()
	data, err := buildTripsPDF(trips, generated, s.loc())
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TRIPS_%s.pdf", generated.In(s.loc()).Format("20060102_1504"))
	return data, filename, nil
}

func buildTripsPDF(trips []models.Trip, generated time.Time, loc *time.Location) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Travel Diary", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAVEL DIARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Generated : "+utils.FormatDateTime(generated, loc))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Trips     : %d", len(trips)))
	pdf.Ln(10)

	if len(trips) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No trips recorded.")
		pdf.Ln(7)
	}

	for _, t := range trips {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr(fmt.Sprintf("#%d  %s -> %s", t.TripNumber, utils.Safe(t.Origin, "-"), utils.Safe(t.Destination, "-"))))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 10)
		lines := []string{
			fmt.Sprintf("Mode       : %s", t.Mode.Label()),
			fmt.Sprintf("Departure  : %s", utils.FormatDateTime(t.DepartureTime, loc)),
			fmt.Sprintf("Companions : %s", companionSummary(t.Companions)),
			fmt.Sprintf("Consent    : %s", yesNo(t.ConsentGiven)),
			fmt.Sprintf("Synced     : %s", syncedLabel(t.SyncedAt, loc)),
		}
		if coords := coordinates(t); coords != "" {
			lines = append(lines, "Coordinates: "+coords)
		}
		for _, line := range lines {
			pdf.Cell(0, 5, tr(line))
			pdf.Ln(5)
		}
		if t.Notes != nil && strings.TrimSpace(*t.Notes) != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, tr("Notes: "+strings.TrimSpace(*t.Notes)), "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func companionSummary(cs []models.Companion) string {
	if len(cs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		name := "unnamed"
		if c.Name != nil && strings.TrimSpace(*c.Name) != "" {
			name = strings.TrimSpace(*c.Name)
		}
		if c.Relationship != nil && strings.TrimSpace(*c.Relationship) != "" {
			name += " (" + strings.TrimSpace(*c.Relationship) + ")"
		}
		parts = append(parts, name)
	}
	return fmt.Sprintf("%d - %s", len(cs), strings.Join(parts, ", "))
}

func coordinates(t models.Trip) string {
	var parts []string
	if t.OriginLat != nil && t.OriginLng != nil {
		parts = append(parts, fmt.Sprintf("from %.6f, %.6f", *t.OriginLat, *t.OriginLng))
	}
	if t.DestinationLat != nil && t.DestinationLng != nil {
		parts = append(parts, fmt.Sprintf("to %.6f, %.6f", *t.DestinationLat, *t.DestinationLng))
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func syncedLabel(at *time.Time, loc *time.Location) string {
	if at == nil {
		return "not synced"
	}
	return utils.FormatDateTime(*at, loc)
}
