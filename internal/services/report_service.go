package services

import (
	"bytes"
	"fmt"
	"strings"

	"schooltrip/internal/domain/models"
	"schooltrip/internal/repositories"
	"schooltrip/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportService renders the printable trip request form. The document
// consumes exactly the trip request and bus line fields, nothing else.
type ReportService struct {
	TripRepo  repositories.TripRepository
	LineRepo  repositories.BusLineRepository
	RequestID string
	Loader    func(int64) (models.TripRequest, error)
}

func (s ReportService) Generate(tripID int64) ([]byte, string, error) {
	trip, err := s.loadTrip(tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "report", "generate", fmt.Sprintf("trip_id=%d", tripID))
	return buildTripPDF(trip)
}

func (s ReportService) loadTrip(tripID int64) (models.TripRequest, error) {
	if s.Loader != nil {
		return s.Loader(tripID)
	}
	trip, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return trip, err
	}
	trip.BusLines, err = s.LineRepo.ListByTrip(tripID)
	return trip, err
}

func buildTripPDF(t models.TripRequest) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("School Trip Request", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SCHOOL TRIP REQUEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Request No    : %s", safe(t.Name, "-")),
		fmt.Sprintf("Status        : %s", safe(t.Status, "-")),
		fmt.Sprintf("Trip Type     : %s", safe(t.TripType, "-")),
		fmt.Sprintf("Date / Day    : %s %s", safe(t.DateFrom, "-"), safe(t.DayName, "")),
		fmt.Sprintf("Students      : %d", t.StudentsCount),
		fmt.Sprintf("Buses         : %d", t.BusesCount),
		fmt.Sprintf("From          : %s", safe(t.DirectionFrom, "-")),
		fmt.Sprintf("To            : %s", safe(t.DirectionTo, "-")),
		fmt.Sprintf("Schools       : %s", safe(t.SchoolNames, "-")),
		fmt.Sprintf("Purpose       : %s", safe(t.TripPurpose, "-")),
		fmt.Sprintf("Stage         : %s", safe(t.Stage, "-")),
		fmt.Sprintf("Applicant     : %s (%s)", safe(t.ApplicantName, "-"), safe(t.ApplicantMobile, "-")),
		fmt.Sprintf("School Leader : %s", safe(t.SchoolLeaderName, "-")),
		fmt.Sprintf("Transport OK  : %s", yesNo(t.TransportApproval)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	if len(t.BusLines) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Assigned Buses")
		pdf.Ln(9)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(15, 7, "#", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 7, "Plate", "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, "Seats", "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 7, "Driver", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 7, "Driver Mobile", "1", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for i, line := range t.BusLines {
			pdf.CellFormat(15, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(45, 7, safe(line.LicensePlate, "-"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%d", line.Seats), "1", 0, "C", false, 0, "")
			pdf.CellFormat(55, 7, safe(line.DriverName, "-"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(45, 7, safe(line.DriverMobile, "-"), "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TRIP_%s.pdf", safeFilenamePart(t.Name))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func safeFilenamePart(s string) string {
	out := []rune{}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == '-' || r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "request"
	}
	return string(out)
}
