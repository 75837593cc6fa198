package repositories

import (
	"testing"

	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSequenceNextFormatsPaddedName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT prefix, padding, next_number").
		WillReturnRows(sqlmock.NewRows([]string{"prefix", "padding", "next_number"}).
			AddRow("STR", 5, int64(42)))
	mock.ExpectExec("UPDATE sequences SET next_number").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	seq := SequenceRepository{DB: db}
	name, err := seq.Next(tx, SequenceCodeTrip)
	if err != nil {
		t.Fatalf("next error: %v", err)
	}
	if name != "STR00042" {
		t.Fatalf("sequence name: got %q want STR00042", name)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit error: %v", err)
	}
}

func TestTripGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trip_requests WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := TripRepository{DB: db}
	if _, err := repo.GetByID(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTripDeleteReportsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM trip_requests").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TripRepository{DB: db}
	if err := repo.Delete(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEventFindByTripIDExcludesSelf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("WHERE e.trip_id").
		WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "event_type_id", "code", "date_begin", "date_end",
			"seats_max", "address", "organizer_name", "organizer_mobile", "trip_id",
		}))

	repo := EventRepository{DB: db}
	events, err := repo.FindByTripID(7, 9)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no rival events, got %d", len(events))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScanEventComputesFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("WHERE e.id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "event_type_id", "code", "date_begin", "date_end",
			"seats_max", "address", "organizer_name", "organizer_mobile", "trip_id",
		}).AddRow(int64(9), "رحلة", int64(1), models.EventTypeSchoolTrip,
			"2025-03-10", "2025-03-10", 40, "", "", "", nil))

	repo := EventRepository{DB: db}
	e, err := repo.GetByID(9)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !e.IsSchoolTrip || !e.CanCreateTrip {
		t.Fatalf("flags: is_school_trip=%v can_create_trip=%v", e.IsSchoolTrip, e.CanCreateTrip)
	}
}
