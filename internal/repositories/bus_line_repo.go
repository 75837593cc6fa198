package repositories

import (
	"database/sql"

	intconfig "schooltrip/internal/config"
	intdb "schooltrip/internal/db"
	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
)

type BusLineRepository struct {
	DB *sql.DB
}

func (r BusLineRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const busLineColumns = `
	l.id, l.trip_id, l.vehicle_id, l.driver_id,
	COALESCE(d.name,''), COALESCE(l.driver_mobile,''),
	COALESCE(l.license_plate,''), l.seats, COALESCE(l.notes,'')
`

func scanBusLine(scan func(dest ...any) error) (models.BusLine, error) {
	var (
		l        models.BusLine
		driverID sql.NullInt64
	)
	err := scan(
		&l.ID, &l.TripID, &l.VehicleID, &driverID,
		&l.DriverName, &l.DriverMobile,
		&l.LicensePlate, &l.Seats, &l.Notes,
	)
	if err != nil {
		return l, err
	}
	if driverID.Valid {
		l.DriverID = &driverID.Int64
	}
	return l, nil
}

func (r BusLineRepository) ListByTrip(tripID int64) ([]models.BusLine, error) {
	rows, err := r.db().Query(`
		SELECT `+busLineColumns+`
		FROM trip_bus_lines l
		LEFT JOIN drivers d ON d.id = l.driver_id
		WHERE l.trip_id = ?
		ORDER BY l.id
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusLine{}
	for rows.Next() {
		l, err := scanBusLine(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r BusLineRepository) GetByID(id int64) (models.BusLine, error) {
	row := r.db().QueryRow(`
		SELECT `+busLineColumns+`
		FROM trip_bus_lines l
		LEFT JOIN drivers d ON d.id = l.driver_id
		WHERE l.id = ?
	`, id)
	l, err := scanBusLine(row.Scan)
	if err == sql.ErrNoRows {
		return l, domain.NotFoundError{Resource: "bus line"}
	}
	return l, err
}

// VehicleTaken reports whether another line of the same trip already uses
// the vehicle.
func (r BusLineRepository) VehicleTaken(tripID, vehicleID, excludeLineID int64) (bool, error) {
	var id int64
	err := r.db().QueryRow(`
		SELECT id FROM trip_bus_lines
		WHERE trip_id = ? AND vehicle_id = ? AND id != ?
		LIMIT 1
	`, tripID, vehicleID, excludeLineID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r BusLineRepository) Create(l *models.BusLine) error {
	res, err := r.db().Exec(`
		INSERT INTO trip_bus_lines
			(trip_id, vehicle_id, driver_id, driver_mobile, license_plate, seats, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		l.TripID, l.VehicleID, intdb.NullID(l.DriverID),
		l.DriverMobile, l.LicensePlate, l.Seats, l.Notes,
	)
	if err != nil {
		return err
	}
	l.ID, err = res.LastInsertId()
	return err
}

func (r BusLineRepository) Update(l *models.BusLine) error {
	_, err := r.db().Exec(`
		UPDATE trip_bus_lines SET
			vehicle_id = ?, driver_id = ?, driver_mobile = ?,
			license_plate = ?, seats = ?, notes = ?
		WHERE id = ?
	`,
		l.VehicleID, intdb.NullID(l.DriverID), l.DriverMobile,
		l.LicensePlate, l.Seats, l.Notes,
		l.ID,
	)
	return err
}

func (r BusLineRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trip_bus_lines WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "bus line"}
	}
	return nil
}
