package services

import (
	"database/sql"
	"strings"
	"testing"

	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
	"schooltrip/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var eventCols = []string{
	"id", "name", "event_type_id", "code", "date_begin", "date_end",
	"seats_max", "address", "organizer_name", "organizer_mobile", "trip_id",
}

func eventRows(e models.Event) *sqlmock.Rows {
	var tripID any
	if e.TripID != nil {
		tripID = *e.TripID
	}
	return sqlmock.NewRows(eventCols).AddRow(
		e.ID, e.Name, e.EventTypeID, e.EventTypeCode, e.DateBegin, e.DateEnd,
		e.SeatsMax, e.Address, e.OrganizerName, e.OrganizerMobile, tripID,
	)
}

func emptyEventRows() *sqlmock.Rows {
	return sqlmock.NewRows(eventCols)
}

func eventServiceWith(db *sql.DB) EventService {
	return EventService{
		EventRepo: repositories.EventRepository{DB: db},
		TripRepo:  repositories.TripRepository{DB: db, Seq: repositories.SequenceRepository{DB: db}},
		Trips:     tripServiceWith(db),
		Audit:     repositories.AuditRepository{DB: db},
	}
}

func schoolTripEvent(id int64) models.Event {
	return models.Event{
		ID:            id,
		Name:          "رحلة المتحف",
		EventTypeID:   1,
		EventTypeCode: models.EventTypeSchoolTrip,
		DateBegin:     "2025-03-10",
		DateEnd:       "2025-03-10",
		SeatsMax:      40,
		Address:       "الرياض",
		OrganizerName: "سارة",
	}
}

func TestCreateSchoolTripEventAutoCreatesTrip(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("WHERE e.id").
		WillReturnRows(eventRows(schoolTripEvent(9)))

	expectTripCreate(mock, 7)

	// pairing guard finds no rival event, then both link halves are set
	mock.ExpectQuery("WHERE e.trip_id").
		WillReturnRows(emptyEventRows())
	mock.ExpectExec("UPDATE events SET trip_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_requests SET event_id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("INSERT INTO audit_notes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_notes").
		WillReturnResult(sqlmock.NewResult(2, 1))

	svc := eventServiceWith(db)
	created, err := svc.Create(models.EventPayload{
		Name: "رحلة المتحف", EventTypeID: 1, DateBegin: "2025-03-10", SeatsMax: 40,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.TripID == nil {
		t.Fatalf("school trip event should get an auto-created trip")
	}
	if created.CanCreateTrip {
		t.Fatalf("can_create_trip must drop once the link exists")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAutoCreateTripDefaults(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	expectTripCreate(mock, 7)
	mock.ExpectQuery("WHERE e.trip_id").
		WillReturnRows(emptyEventRows())
	mock.ExpectExec("UPDATE events SET trip_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_requests SET event_id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := schoolTripEvent(9)
	e.SeatsMax = 0 // no seat limit on the event
	e.Address = ""

	svc := eventServiceWith(db)
	trip, err := svc.autoCreateTrip(e)
	if err != nil {
		t.Fatalf("auto create error: %v", err)
	}
	if trip.StudentsCount != 30 {
		t.Fatalf("students fallback: got %d want 30", trip.StudentsCount)
	}
	if trip.BusesCount != 1 {
		t.Fatalf("buses default: got %d want 1", trip.BusesCount)
	}
	if trip.TripType != models.TripTypeActivity || trip.Stage != models.StagePrimary {
		t.Fatalf("type/stage defaults: %s/%s", trip.TripType, trip.Stage)
	}
	if trip.DirectionTo != models.Unspecified {
		t.Fatalf("empty address should yield sentinel, got %q", trip.DirectionTo)
	}
	if trip.Status != models.StatusDraft {
		t.Fatalf("auto-created trip should be draft, got %s", trip.Status)
	}
}

func TestAutoCreateFailureDoesNotBlockEvent(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("WHERE e.id").
		WillReturnRows(eventRows(schoolTripEvent(9)))

	// sequence fetch blows up inside the trip create transaction
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT prefix, padding, next_number").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	// the failure only leaves a warning note on the event
	mock.ExpectExec("INSERT INTO audit_notes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	svc := eventServiceWith(db)
	created, err := svc.Create(models.EventPayload{
		Name: "رحلة المتحف", EventTypeID: 1, DateBegin: "2025-03-10", SeatsMax: 40,
	})
	if err != nil {
		t.Fatalf("event creation must survive the trip failure, got %v", err)
	}
	if created.TripID != nil {
		t.Fatalf("failed auto-creation should leave no link")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripFromEventPreconditions(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	plain := schoolTripEvent(9)
	plain.EventTypeCode = "conference"
	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(plain))

	svc := eventServiceWith(db)
	if _, err := svc.CreateTripFromEvent(9); !domain.IsAction(err) {
		t.Fatalf("non school trip event should be rejected, got %v", err)
	}

	tripID := int64(7)
	linked := schoolTripEvent(9)
	linked.TripID = &tripID
	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(linked))

	if _, err := svc.CreateTripFromEvent(9); !domain.IsAction(err) {
		t.Fatalf("already linked event should be rejected, got %v", err)
	}
}

func TestGuardRejectsSecondEventForTrip(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	rival := schoolTripEvent(4)
	rival.Name = "فعالية أخرى"
	mock.ExpectQuery("WHERE e.trip_id").WillReturnRows(eventRows(rival))
	expectTripFetch(mock, models.TripRequest{ID: 7, Name: "STR00007", Status: models.StatusDraft})

	svc := eventServiceWith(db)
	err := svc.guardUniqueTrip(9, 7)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "STR00007") || !strings.Contains(err.Error(), "فعالية أخرى") {
		t.Fatalf("guard message should name both records: %v", err)
	}
}

func TestUpdateEventSyncsDraftTrip(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	tripID := int64(7)
	prev := schoolTripEvent(9)
	prev.TripID = &tripID
	cur := prev
	cur.DateBegin = "2025-03-12"
	cur.DateEnd = "2025-03-12"
	cur.SeatsMax = 55

	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(prev))
	mock.ExpectExec("UPDATE events SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(cur))

	eventID := int64(9)
	expectTripFetch(mock, models.TripRequest{
		ID: 7, Name: "STR00007", Status: models.StatusDraft, EventID: &eventID,
		TripType: models.TripTypeActivity, DateFrom: "2025-03-10",
		StudentsCount: 40, BusesCount: 1, Stage: models.StagePrimary,
	})
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trip_requests SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM trip_request_schools").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO audit_notes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	svc := eventServiceWith(db)
	if _, err := svc.Update(9, models.EventPayload{
		Name: "رحلة المتحف", EventTypeID: 1, DateBegin: "2025-03-12", SeatsMax: 55,
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateEventLeavesSubmittedTripAlone(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	tripID := int64(7)
	prev := schoolTripEvent(9)
	prev.TripID = &tripID
	cur := prev
	cur.SeatsMax = 55

	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(prev))
	mock.ExpectExec("UPDATE events SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(cur))

	eventID := int64(9)
	expectTripFetch(mock, models.TripRequest{
		ID: 7, Name: "STR00007", Status: models.StatusLeader, EventID: &eventID,
	})

	svc := eventServiceWith(db)
	if _, err := svc.Update(9, models.EventPayload{
		Name: "رحلة المتحف", EventTypeID: 1, DateBegin: "2025-03-10", SeatsMax: 55,
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	// no trip update, no note: the request already left draft
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteEventCascadesToDraftTrip(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	tripID := int64(7)
	e := schoolTripEvent(9)
	e.TripID = &tripID

	eventID := int64(9)
	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(e))
	expectTripFetch(mock, models.TripRequest{
		ID: 7, Name: "STR00007", Status: models.StatusDraft, EventID: &eventID,
	})
	mock.ExpectExec("UPDATE events SET trip_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_requests SET event_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM trip_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := eventServiceWith(db)
	if err := svc.Delete(9); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteEventUnlinksApprovedTrip(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	tripID := int64(7)
	e := schoolTripEvent(9)
	e.TripID = &tripID

	eventID := int64(9)
	mock.ExpectQuery("WHERE e.id").WillReturnRows(eventRows(e))
	expectTripFetch(mock, models.TripRequest{
		ID: 7, Name: "STR00007", Status: models.StatusApproved, EventID: &eventID,
	})
	mock.ExpectExec("UPDATE events SET trip_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_requests SET event_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_notes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := eventServiceWith(db)
	if err := svc.Delete(9); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	// the approved trip itself was never deleted
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
