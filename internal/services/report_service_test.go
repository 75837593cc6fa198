package services

import (
	"bytes"
	"testing"

	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
)

func TestGenerateTripReport(t *testing.T) {
	driverID := int64(2)
	svc := ReportService{
		Loader: func(id int64) (models.TripRequest, error) {
			return models.TripRequest{
				ID: 3, Name: "STR00003", Status: models.StatusApproved,
				TripType: models.TripTypeActivity, DateFrom: "2025-03-10",
				StudentsCount: 40, BusesCount: 1,
				BusLines: []models.BusLine{
					{TripID: 3, VehicleID: 5, DriverID: &driverID, DriverName: "Salem", Seats: 45},
				},
			}, nil
		},
	}

	data, filename, err := svc.Generate(3)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty document")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf, starts with %q", data[:4])
	}
	if filename != "TRIP_STR00003.pdf" {
		t.Fatalf("filename: got %q", filename)
	}
}

func TestGenerateReportPropagatesLoadError(t *testing.T) {
	svc := ReportService{
		Loader: func(id int64) (models.TripRequest, error) {
			return models.TripRequest{}, domain.NotFoundError{Resource: "trip request"}
		},
	}
	if _, _, err := svc.Generate(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"STR00003":    "STR00003",
		"STR 3/ملف":   "STR_3____",
		"":            "request",
		"a-b_c":       "a-b_c",
	}
	for in, want := range cases {
		if got := safeFilenamePart(in); got != want {
			t.Fatalf("safeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
}
