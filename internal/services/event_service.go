package services

import (
	"fmt"
	"strings"

	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
	"schooltrip/internal/repositories"
	"schooltrip/internal/utils"
)

// defaultAutoStudents is the seat fallback used only when a trip request
// is auto-created from an event with no seat maximum.
const defaultAutoStudents = 30

// EventService carries the event side of the extension contract: the
// school-trip flags, auto-creation of trip requests, draft-only forward
// sync, delete cascade rules and the 1:1 pairing guard.
type EventService struct {
	EventRepo repositories.EventRepository
	TripRepo  repositories.TripRepository
	Trips     TripService
	Audit     repositories.AuditRepository
	RequestID string
}

// Create inserts the event and then attempts the trip auto-creation.
// Auto-creation is best-effort: any failure becomes a warning note on the
// event and the event creation still succeeds.
func (s EventService) Create(p models.EventPayload) (models.Event, error) {
	e := eventFromPayload(p)
	if err := s.EventRepo.Create(&e); err != nil {
		return e, err
	}

	// reload for the event type code driving the flags
	created, err := s.EventRepo.GetByID(e.ID)
	if err != nil {
		return e, err
	}

	if created.IsSchoolTrip && created.TripID == nil {
		if trip, err := s.autoCreateTrip(created); err != nil {
			s.postNote(repositories.TargetEvent, created.ID,
				fmt.Sprintf("تعذر إنشاء طلب الرحلة تلقائياً: %v. يمكنك إنشاؤه يدوياً باستخدام زر إنشاء طلب رحلة.", err))
			utils.LogEvent(s.RequestID, "event", "auto_create_trip", "failed: "+err.Error())
		} else {
			created.TripID = &trip.ID
			created.ComputeFlags()
			s.postNote(repositories.TargetEvent, created.ID,
				fmt.Sprintf("تم إنشاء طلب رحلة تلقائياً: %s", trip.Name))
			s.postNote(repositories.TargetTrip, trip.ID,
				fmt.Sprintf("تم الإنشاء من الفعالية: %s", created.Name))
		}
	}

	utils.LogEvent(s.RequestID, "event", "create", fmt.Sprintf("event_id=%d", created.ID))
	return created, nil
}

// autoCreateTrip builds a draft trip request from the event fields,
// persists it and sets both halves of the reciprocal link.
func (s EventService) autoCreateTrip(e models.Event) (models.TripRequest, error) {
	students := e.SeatsMax
	if students == 0 {
		students = defaultAutoStudents
	}
	dateFrom := e.DateBegin
	if dateFrom == "" {
		dateFrom = utils.FormatDate(utils.NowUTC())
	}
	purpose := e.Name
	if purpose == "" {
		purpose = "رحلة مدرسية"
	}
	applicant := e.OrganizerName
	if applicant == "" {
		applicant = models.Unspecified
	}

	trip, err := s.Trips.Create(models.TripPayload{
		TripType:         models.TripTypeActivity,
		DateFrom:         dateFrom,
		StudentsCount:    students,
		BusesCount:       1,
		DirectionTo:      orUnspecified(e.Address),
		TripPurpose:      purpose,
		Stage:            models.StagePrimary,
		ApplicantName:    applicant,
		ApplicantMobile:  e.OrganizerMobile,
		SchoolLeaderName: models.Unspecified,
	})
	if err != nil {
		return trip, err
	}

	if err := s.link(e.ID, trip.ID); err != nil {
		return trip, err
	}
	return trip, nil
}

// CreateTripFromEvent is the manual action behind the "create trip"
// button. Unlike auto-creation its failures surface to the caller.
func (s EventService) CreateTripFromEvent(eventID int64) (models.TripRequest, error) {
	e, err := s.EventRepo.GetByID(eventID)
	if err != nil {
		return models.TripRequest{}, err
	}
	if !e.IsSchoolTrip {
		return models.TripRequest{}, domain.ActionError{Action: "create_trip", Msg: "this event is not a school trip"}
	}
	if e.TripID != nil {
		return models.TripRequest{}, domain.ActionError{Action: "create_trip", Msg: "a trip request is already linked to this event"}
	}

	trip, err := s.autoCreateTrip(e)
	if err != nil {
		return trip, err
	}

	s.postNote(repositories.TargetEvent, e.ID, fmt.Sprintf("تم إنشاء طلب رحلة: %s", trip.Name))
	s.postNote(repositories.TargetTrip, trip.ID, fmt.Sprintf("تم الإنشاء من الفعالية: %s", e.Name))
	utils.LogEvent(s.RequestID, "event", "create_trip", fmt.Sprintf("event_id=%d trip_id=%d", e.ID, trip.ID))
	return trip, nil
}

// link sets both reference columns after running the pairing guard.
func (s EventService) link(eventID, tripID int64) error {
	if err := s.guardUniqueTrip(eventID, tripID); err != nil {
		return err
	}
	if err := s.EventRepo.SetTripID(eventID, &tripID); err != nil {
		return err
	}
	return s.TripRepo.SetEventID(tripID, &eventID)
}

// guardUniqueTrip rejects a link when another event already claims the
// trip, naming both records.
func (s EventService) guardUniqueTrip(eventID, tripID int64) error {
	others, err := s.EventRepo.FindByTripID(tripID, eventID)
	if err != nil {
		return err
	}
	if len(others) > 0 {
		trip, _ := s.TripRepo.GetByID(tripID)
		return domain.ValidationError{
			Field: "trip_id",
			Msg:   fmt.Sprintf("طلب الرحلة %s مرتبط بالفعل بفعالية أخرى: %s", trip.Name, others[0].Name),
		}
	}
	return nil
}

func (s EventService) Get(id int64) (models.Event, error) {
	return s.EventRepo.GetByID(id)
}

func (s EventService) List(q string, page, limit int) ([]models.Event, error) {
	return s.EventRepo.List(q, page, limit)
}

// Update rewrites the event and forwards the changed sync fields to the
// linked trip request, but only while that request is still a draft;
// in-flight and finalized requests are never altered by calendar edits.
func (s EventService) Update(id int64, p models.EventPayload) (models.Event, error) {
	prev, err := s.EventRepo.GetByID(id)
	if err != nil {
		return prev, err
	}

	e := eventFromPayload(p)
	e.ID = prev.ID
	e.TripID = prev.TripID

	if err := s.EventRepo.Update(&e); err != nil {
		return e, err
	}

	cur, err := s.EventRepo.GetByID(id)
	if err != nil {
		return cur, err
	}

	if cur.TripID != nil && cur.IsSchoolTrip {
		s.syncLinkedTrip(prev, cur)
	}

	utils.LogEvent(s.RequestID, "event", "update", fmt.Sprintf("event_id=%d", id))
	return cur, nil
}

// syncLinkedTrip copies changed event fields onto the draft trip request.
func (s EventService) syncLinkedTrip(prev, cur models.Event) {
	trip, err := s.TripRepo.GetByID(*cur.TripID)
	if err != nil {
		utils.LogEvent(s.RequestID, "event", "sync_trip", "load linked trip failed: "+err.Error())
		return
	}
	if trip.Status != models.StatusDraft {
		return
	}

	changed := false
	if cur.DateBegin != prev.DateBegin && cur.DateBegin != "" {
		trip.DateFrom = cur.DateBegin
		trip.DayName = utils.ArabicDayName(cur.DateBegin)
		changed = true
	}
	if cur.SeatsMax != prev.SeatsMax && cur.SeatsMax > 0 {
		trip.StudentsCount = cur.SeatsMax
		changed = true
	}
	if cur.Name != prev.Name && cur.Name != "" {
		trip.TripPurpose = cur.Name
		changed = true
	}
	if cur.Address != prev.Address {
		trip.DirectionTo = orUnspecified(cur.Address)
		changed = true
	}
	if !changed {
		return
	}

	if err := s.TripRepo.Update(&trip); err != nil {
		utils.LogEvent(s.RequestID, "event", "sync_trip", "update linked trip failed: "+err.Error())
		return
	}
	s.postNote(repositories.TargetTrip, trip.ID, "تم تحديث الطلب تلقائياً من الفعالية المرتبطة.")
}

// Delete removes the event. A linked draft trip is deleted along with it;
// a trip past draft survives with its link cleared and a note posted.
func (s EventService) Delete(id int64) error {
	e, err := s.EventRepo.GetByID(id)
	if err != nil {
		return err
	}

	if e.TripID != nil {
		trip, err := s.TripRepo.GetByID(*e.TripID)
		if err != nil {
			return err
		}

		if err := s.EventRepo.SetTripID(e.ID, nil); err != nil {
			return err
		}
		if err := s.TripRepo.SetEventID(trip.ID, nil); err != nil {
			return err
		}

		if trip.Status == models.StatusDraft {
			if err := s.TripRepo.Delete(trip.ID); err != nil {
				return err
			}
		} else {
			s.postNote(repositories.TargetTrip, trip.ID,
				fmt.Sprintf("تم حذف الفعالية المرتبطة: %s", e.Name))
		}
	}

	if err := s.EventRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "event", "delete", fmt.Sprintf("event_id=%d", id))
	return nil
}

// LinkedTrip resolves the trip request an event points at.
func (s EventService) LinkedTrip(id int64) (models.TripRequest, error) {
	e, err := s.EventRepo.GetByID(id)
	if err != nil {
		return models.TripRequest{}, err
	}
	if e.TripID == nil {
		return models.TripRequest{}, domain.ActionError{Action: "view_trip", Msg: "no trip request linked to this event"}
	}
	return s.TripRepo.GetByID(*e.TripID)
}

func (s EventService) Notes(id int64) ([]models.AuditNote, error) {
	if _, err := s.EventRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.Audit.ListNotes(repositories.TargetEvent, id)
}

func (s EventService) postNote(targetType string, targetID int64, body string) {
	if err := s.Audit.PostNote(targetType, targetID, body); err != nil {
		utils.LogEvent(s.RequestID, "event", "note", "post note failed: "+err.Error())
	}
}

func eventFromPayload(p models.EventPayload) models.Event {
	dateEnd := strings.TrimSpace(p.DateEnd)
	if dateEnd == "" {
		dateEnd = strings.TrimSpace(p.DateBegin)
	}
	return models.Event{
		Name:            strings.TrimSpace(p.Name),
		EventTypeID:     p.EventTypeID,
		DateBegin:       strings.TrimSpace(p.DateBegin),
		DateEnd:         dateEnd,
		SeatsMax:        p.SeatsMax,
		Address:         strings.TrimSpace(p.Address),
		OrganizerName:   strings.TrimSpace(p.OrganizerName),
		OrganizerMobile: strings.TrimSpace(p.OrganizerMobile),
	}
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.Unspecified
	}
	return s
}
