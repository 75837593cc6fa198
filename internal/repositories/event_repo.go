package repositories

import (
	"database/sql"

	intconfig "schooltrip/internal/config"
	intdb "schooltrip/internal/db"
	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
)

type EventRepository struct {
	DB *sql.DB
}

func (r EventRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const eventColumns = `
	e.id, e.name, e.event_type_id, COALESCE(t.code,''),
	DATE_FORMAT(e.date_begin, '%Y-%m-%d'),
	DATE_FORMAT(e.date_end, '%Y-%m-%d'),
	e.seats_max, COALESCE(e.address,''),
	COALESCE(e.organizer_name,''), COALESCE(e.organizer_mobile,''),
	e.trip_id
`

func scanEvent(scan func(dest ...any) error) (models.Event, error) {
	var (
		e      models.Event
		tripID sql.NullInt64
	)
	err := scan(
		&e.ID, &e.Name, &e.EventTypeID, &e.EventTypeCode,
		&e.DateBegin, &e.DateEnd,
		&e.SeatsMax, &e.Address,
		&e.OrganizerName, &e.OrganizerMobile,
		&tripID,
	)
	if err != nil {
		return e, err
	}
	if tripID.Valid {
		e.TripID = &tripID.Int64
	}
	e.ComputeFlags()
	return e, nil
}

func (r EventRepository) Create(e *models.Event) error {
	res, err := r.db().Exec(`
		INSERT INTO events
			(name, event_type_id, date_begin, date_end, seats_max,
			 address, organizer_name, organizer_mobile, trip_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.Name, e.EventTypeID, e.DateBegin, e.DateEnd, e.SeatsMax,
		e.Address, e.OrganizerName, e.OrganizerMobile, intdb.NullID(e.TripID),
	)
	if err != nil {
		return err
	}
	e.ID, err = res.LastInsertId()
	return err
}

func (r EventRepository) GetByID(id int64) (models.Event, error) {
	row := r.db().QueryRow(`
		SELECT `+eventColumns+`
		FROM events e
		LEFT JOIN event_types t ON t.id = e.event_type_id
		WHERE e.id = ?
	`, id)
	e, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return e, domain.NotFoundError{Resource: "event"}
	}
	return e, err
}

func (r EventRepository) List(q string, page, limit int) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		LEFT JOIN event_types t ON t.id = e.event_type_id
		WHERE 1=1`
	args := []any{}

	if q != "" {
		query += ` AND e.name LIKE ?`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY e.id DESC`

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

	out := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EventRepository) Update(e *models.Event) error {
	_, err := r.db().Exec(`
		UPDATE events SET
			name = ?, event_type_id = ?, date_begin = ?, date_end = ?,
			seats_max = ?, address = ?, organizer_name = ?, organizer_mobile = ?
		WHERE id = ?
	`,
		e.Name, e.EventTypeID, e.DateBegin, e.DateEnd,
		e.SeatsMax, e.Address, e.OrganizerName, e.OrganizerMobile,
		e.ID,
	)
	return err
}

// SetTripID writes or clears the link column on the event side.
func (r EventRepository) SetTripID(id int64, tripID *int64) error {
	_, err := r.db().Exec(`UPDATE events SET trip_id = ? WHERE id = ?`, intdb.NullID(tripID), id)
	return err
}

// FindByTripID returns the events whose trip_id points at the trip,
// optionally excluding one event. Backs the 1:1 pairing guard.
func (r EventRepository) FindByTripID(tripID, excludeEventID int64) ([]models.Event, error) {
	rows, err := r.db().Query(`
		SELECT `+eventColumns+`
		FROM events e
		LEFT JOIN event_types t ON t.id = e.event_type_id
		WHERE e.trip_id = ? AND e.id != ?
	`, tripID, excludeEventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EventRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "event"}
	}
	return nil
}

// SchoolTripTypeID resolves the id of the well-known school trip category.
func (r EventRepository) SchoolTripTypeID() (int64, error) {
	var id int64
	err := r.db().QueryRow(`SELECT id FROM event_types WHERE code = ?`, models.EventTypeSchoolTrip).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, domain.NotFoundError{Resource: "school trip event type"}
	}
	return id, err
}
