package repositories

import (
	"database/sql"

	intconfig "schooltrip/internal/config"
	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `
	v.id, v.name, v.license_plate, v.seats, v.driver_id,
	COALESCE(d.name,''), COALESCE(d.mobile,'')
`

func scanVehicle(scan func(dest ...any) error) (models.Vehicle, error) {
	var (
		v        models.Vehicle
		driverID sql.NullInt64
	)
	err := scan(&v.ID, &v.Name, &v.LicensePlate, &v.Seats, &driverID, &v.DriverName, &v.DriverMobile)
	if err != nil {
		return v, err
	}
	if driverID.Valid {
		v.DriverID = &driverID.Int64
	}
	return v, nil
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	row := r.db().QueryRow(`
		SELECT `+vehicleColumns+`
		FROM vehicles v
		LEFT JOIN drivers d ON d.id = v.driver_id
		WHERE v.id = ?
	`, id)
	v, err := scanVehicle(row.Scan)
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "vehicle"}
	}
	return v, err
}

func (r VehicleRepository) List(q string) ([]models.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles v
		LEFT JOIN drivers d ON d.id = v.driver_id
		WHERE 1=1`
	args := []any{}
	if q != "" {
		query += ` AND (v.name LIKE ? OR v.license_plate LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY v.id`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// DriverMobile looks up a driver's mobile, empty when the driver is unknown.
func (r VehicleRepository) DriverMobile(driverID int64) (string, error) {
	var mobile string
	err := r.db().QueryRow(`SELECT COALESCE(mobile,'') FROM drivers WHERE id = ?`, driverID).Scan(&mobile)
	if err == sql.ErrNoRows {
		return "", domain.NotFoundError{Resource: "driver"}
	}
	return mobile, err
}
