package repositories

import (
	"database/sql"

	intconfig "schooltrip/internal/config"
	intdb "schooltrip/internal/db"
	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
)

type TripRepository struct {
	DB  *sql.DB
	Seq SequenceRepository
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `
	id, name, trip_type,
	DATE_FORMAT(date_from, '%Y-%m-%d'),
	day_name, students_count, buses_count,
	COALESCE(direction_from,''), direction_to,
	COALESCE(school_names,''), trip_purpose, stage,
	applicant_name, COALESCE(applicant_mobile,''),
	school_leader_name, transport_approval, status, event_id
`

func scanTrip(scan func(dest ...any) error) (models.TripRequest, error) {
	var (
		t       models.TripRequest
		eventID sql.NullInt64
	)
	err := scan(
		&t.ID, &t.Name, &t.TripType,
		&t.DateFrom,
		&t.DayName, &t.StudentsCount, &t.BusesCount,
		&t.DirectionFrom, &t.DirectionTo,
		&t.SchoolNames, &t.TripPurpose, &t.Stage,
		&t.ApplicantName, &t.ApplicantMobile,
		&t.SchoolLeaderName, &t.TransportApproval, &t.Status, &eventID,
	)
	if err != nil {
		return t, err
	}
	if eventID.Valid {
		t.EventID = &eventID.Int64
	}
	return t, nil
}

// Create inserts the trip inside one transaction and assigns the next
// sequence number when no explicit name was supplied.
func (r TripRepository) Create(t *models.TripRequest) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if t.Name == "" {
		name, err := r.Seq.Next(tx, SequenceCodeTrip)
		if err != nil {
			return err
		}
		t.Name = name
	}

	res, err := tx.Exec(`
		INSERT INTO trip_requests
			(name, trip_type, date_from, day_name, students_count, buses_count,
			 direction_from, direction_to, school_names, trip_purpose, stage,
			 applicant_name, applicant_mobile, school_leader_name,
			 transport_approval, status, event_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.Name, t.TripType, t.DateFrom, t.DayName, t.StudentsCount, t.BusesCount,
		t.DirectionFrom, t.DirectionTo, t.SchoolNames, t.TripPurpose, t.Stage,
		t.ApplicantName, t.ApplicantMobile, t.SchoolLeaderName,
		t.TransportApproval, t.Status, intdb.NullID(t.EventID),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id

	if err := replaceTripSchools(tx, id, t.SchoolIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceTripSchools(tx *sql.Tx, tripID int64, schoolIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM trip_request_schools WHERE trip_id = ?`, tripID); err != nil {
		return err
	}
	for _, sid := range schoolIDs {
		if _, err := tx.Exec(`
			INSERT INTO trip_request_schools (trip_id, school_id) VALUES (?, ?)
		`, tripID, sid); err != nil {
			return err
		}
	}
	return nil
}

func (r TripRepository) GetByID(id int64) (models.TripRequest, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trip_requests WHERE id = ?`, id)
	t, err := scanTrip(row.Scan)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip request"}
	}
	if err != nil {
		return t, err
	}

	t.SchoolIDs, err = r.schoolIDs(id)
	return t, err
}

func (r TripRepository) schoolIDs(tripID int64) ([]int64, error) {
	rows, err := r.db().Query(`SELECT school_id FROM trip_request_schools WHERE trip_id = ? ORDER BY school_id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// List returns trips newest first, optionally filtered by free text and
// status. limit <= 0 disables paging.
func (r TripRepository) List(q, status string, page, limit int) ([]models.TripRequest, error) {
	query := `SELECT ` + tripColumns + ` FROM trip_requests WHERE 1=1`
	args := []any{}

	if q != "" {
		query += ` AND (name LIKE ? OR trip_purpose LIKE ? OR applicant_name LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`

	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripRequest{}
	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update rewrites the editable fields. Name and status are never touched
// here; status changes go through UpdateStatus.
func (r TripRepository) Update(t *models.TripRequest) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE trip_requests SET
			trip_type = ?, date_from = ?, day_name = ?,
			students_count = ?, buses_count = ?,
			direction_from = ?, direction_to = ?, school_names = ?,
			trip_purpose = ?, stage = ?,
			applicant_name = ?, applicant_mobile = ?, school_leader_name = ?
		WHERE id = ?
	`,
		t.TripType, t.DateFrom, t.DayName,
		t.StudentsCount, t.BusesCount,
		t.DirectionFrom, t.DirectionTo, t.SchoolNames,
		t.TripPurpose, t.Stage,
		t.ApplicantName, t.ApplicantMobile, t.SchoolLeaderName,
		t.ID,
	)
	if err != nil {
		return err
	}

	if err := replaceTripSchools(tx, t.ID, t.SchoolIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r TripRepository) UpdateStatus(id int64, status string, transportApproval bool) error {
	_, err := r.db().Exec(`
		UPDATE trip_requests SET status = ?, transport_approval = ? WHERE id = ?
	`, status, transportApproval, id)
	return err
}

// SetEventID writes or clears the link column on the trip side.
func (r TripRepository) SetEventID(id int64, eventID *int64) error {
	_, err := r.db().Exec(`UPDATE trip_requests SET event_id = ? WHERE id = ?`, intdb.NullID(eventID), id)
	return err
}

// Delete removes the trip. Bus lines and the schools m2m cascade via FK;
// the event link must be cleared by the caller first (restrict).
func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trip_requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "trip request"}
	}
	return nil
}
