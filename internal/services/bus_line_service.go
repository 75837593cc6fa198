package services

import (
	"fmt"

	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
	"schooltrip/internal/repositories"
	"schooltrip/internal/utils"
)

// BusLineService edits the bus list of a trip request: one vehicle per
// line, no vehicle twice on the same trip, driver defaulted from the
// vehicle's registered driver.
type BusLineService struct {
	LineRepo    repositories.BusLineRepository
	VehicleRepo repositories.VehicleRepository
	TripRepo    repositories.TripRepository
	RequestID   string
}

func (s BusLineService) List(tripID int64) ([]models.BusLine, error) {
	if _, err := s.TripRepo.GetByID(tripID); err != nil {
		return nil, err
	}
	return s.LineRepo.ListByTrip(tripID)
}

func (s BusLineService) Add(tripID int64, p models.BusLinePayload) (models.BusLine, error) {
	if _, err := s.TripRepo.GetByID(tripID); err != nil {
		return models.BusLine{}, err
	}

	line, err := s.buildLine(tripID, 0, p)
	if err != nil {
		return line, err
	}

	if err := s.LineRepo.Create(&line); err != nil {
		return line, err
	}
	utils.LogEvent(s.RequestID, "bus_line", "add", fmt.Sprintf("trip_id=%d line_id=%d", tripID, line.ID))
	return line, nil
}

func (s BusLineService) Update(tripID, lineID int64, p models.BusLinePayload) (models.BusLine, error) {
	existing, err := s.LineRepo.GetByID(lineID)
	if err != nil {
		return existing, err
	}
	if existing.TripID != tripID {
		return existing, domain.NotFoundError{Resource: "bus line"}
	}

	line, err := s.buildLine(tripID, lineID, p)
	if err != nil {
		return line, err
	}
	line.ID = lineID

	if err := s.LineRepo.Update(&line); err != nil {
		return line, err
	}
	utils.LogEvent(s.RequestID, "bus_line", "update", fmt.Sprintf("trip_id=%d line_id=%d", tripID, lineID))
	return line, nil
}

func (s BusLineService) Remove(tripID, lineID int64) error {
	existing, err := s.LineRepo.GetByID(lineID)
	if err != nil {
		return err
	}
	if existing.TripID != tripID {
		return domain.NotFoundError{Resource: "bus line"}
	}
	if err := s.LineRepo.Delete(lineID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bus_line", "remove", fmt.Sprintf("trip_id=%d line_id=%d", tripID, lineID))
	return nil
}

// buildLine resolves the vehicle, enforces per-trip vehicle uniqueness
// and fills the driver and read-only projections.
func (s BusLineService) buildLine(tripID, excludeLineID int64, p models.BusLinePayload) (models.BusLine, error) {
	vehicle, err := s.VehicleRepo.GetByID(p.VehicleID)
	if err != nil {
		return models.BusLine{}, err
	}

	taken, err := s.LineRepo.VehicleTaken(tripID, vehicle.ID, excludeLineID)
	if err != nil {
		return models.BusLine{}, err
	}
	if taken {
		return models.BusLine{}, domain.ValidationError{
			Field: "vehicle_id",
			Msg:   fmt.Sprintf("الحافلة %s مضافة بالفعل لهذه الرحلة.", vehicle.Name),
		}
	}

	line := models.BusLine{
		TripID:       tripID,
		VehicleID:    vehicle.ID,
		LicensePlate: vehicle.LicensePlate,
		Seats:        vehicle.Seats,
		Notes:        p.Notes,
	}

	// driver defaults to the vehicle's registered driver; an explicit
	// driver id always wins
	switch {
	case p.DriverID != nil:
		line.DriverID = p.DriverID
		mobile, err := s.VehicleRepo.DriverMobile(*p.DriverID)
		if err != nil {
			return line, err
		}
		line.DriverMobile = mobile
	case vehicle.DriverID != nil:
		line.DriverID = vehicle.DriverID
		line.DriverMobile = vehicle.DriverMobile
	}

	return line, nil
}
