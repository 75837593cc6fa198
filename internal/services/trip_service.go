package services

import (
	"fmt"
	"strings"

	"schooltrip/internal/domain"
	"schooltrip/internal/domain/models"
	"schooltrip/internal/repositories"
	"schooltrip/internal/utils"
)

// TripService owns the trip request lifecycle: creation with sequence
// numbering, field validation, the approval state machine, and the
// trip-side half of the event synchronization contract.
type TripService struct {
	TripRepo   repositories.TripRepository
	LineRepo   repositories.BusLineRepository
	EventRepo  repositories.EventRepository
	SchoolRepo repositories.SchoolRepository
	Audit      repositories.AuditRepository
	RequestID  string
}

func (s TripService) Create(p models.TripPayload) (models.TripRequest, error) {
	if err := validateTripPayload(p); err != nil {
		return models.TripRequest{}, err
	}

	t := tripFromPayload(p)
	t.Status = models.StatusDraft

	names, err := s.SchoolRepo.NamesByIDs(t.SchoolIDs)
	if err != nil {
		return t, err
	}
	t.SchoolNames = joinSchoolNames(names)

	if err := s.TripRepo.Create(&t); err != nil {
		return t, err
	}

	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("trip_id=%d name=%s", t.ID, t.Name))
	return t, nil
}

func (s TripService) Get(id int64) (models.TripRequest, error) {
	t, err := s.TripRepo.GetByID(id)
	if err != nil {
		return t, err
	}
	t.BusLines, err = s.LineRepo.ListByTrip(id)
	return t, err
}

func (s TripService) List(q, status string, page, limit int) ([]models.TripRequest, error) {
	return s.TripRepo.List(q, status, page, limit)
}

// Update rewrites the editable fields and mirrors the changed sync fields
// onto the linked event. Backward sync is not gated on status: calendar
// data follows the request even after approval.
func (s TripService) Update(id int64, p models.TripPayload) (models.TripRequest, error) {
	if err := validateTripPayload(p); err != nil {
		return models.TripRequest{}, err
	}

	prev, err := s.TripRepo.GetByID(id)
	if err != nil {
		return prev, err
	}

	t := tripFromPayload(p)
	t.ID = prev.ID
	t.Name = prev.Name // assigned once, immutable
	t.Status = prev.Status
	t.TransportApproval = prev.TransportApproval
	t.EventID = prev.EventID

	names, err := s.SchoolRepo.NamesByIDs(t.SchoolIDs)
	if err != nil {
		return t, err
	}
	t.SchoolNames = joinSchoolNames(names)

	if err := s.TripRepo.Update(&t); err != nil {
		return t, err
	}

	if t.EventID != nil {
		s.syncLinkedEvent(prev, t)
	}

	utils.LogEvent(s.RequestID, "trip", "update", fmt.Sprintf("trip_id=%d", t.ID))
	return t, nil
}

// syncLinkedEvent copies date, seats and purpose onto the linked event
// when they changed. Failures only log; the trip update already happened.
func (s TripService) syncLinkedEvent(prev, cur models.TripRequest) {
	event, err := s.EventRepo.GetByID(*cur.EventID)
	if err != nil {
		utils.LogEvent(s.RequestID, "trip", "sync_event", "load linked event failed: "+err.Error())
		return
	}

	changed := false
	if cur.DateFrom != prev.DateFrom {
		event.DateBegin = cur.DateFrom
		event.DateEnd = cur.DateFrom
		changed = true
	}
	if cur.StudentsCount != prev.StudentsCount {
		event.SeatsMax = cur.StudentsCount
		changed = true
	}
	if cur.TripPurpose != prev.TripPurpose {
		event.Name = cur.TripPurpose
		changed = true
	}
	if !changed {
		return
	}

	if err := s.EventRepo.Update(&event); err != nil {
		utils.LogEvent(s.RequestID, "trip", "sync_event", "update linked event failed: "+err.Error())
		return
	}
	s.postNote(repositories.TargetEvent, event.ID, "تم تحديث الفعالية تلقائياً من طلب الرحلة.")
}

// Transition fires a lifecycle action. The only guard is the current
// status per the transition table; side effects are limited to the
// approval flag and, for cancel, unlinking the event.
func (s TripService) Transition(id int64, action string) (models.TripRequest, error) {
	t, err := s.TripRepo.GetByID(id)
	if err != nil {
		return t, err
	}

	if !models.ValidTransition(action, t.Status) {
		return t, domain.ActionError{
			Action: action,
			Msg:    fmt.Sprintf("not allowed from status %q", t.Status),
		}
	}

	target, ok := models.TransitionTarget(action)
	if !ok {
		return t, domain.ActionError{Action: action, Msg: "unknown action"}
	}

	approval := t.TransportApproval
	switch action {
	case models.ActionApprove:
		approval = true
	case models.ActionReset:
		approval = false
	case models.ActionCancel:
		if t.EventID != nil {
			s.unlinkEvent(&t, fmt.Sprintf("تم إلغاء طلب الرحلة المرتبط: %s", t.Name))
		}
	}

	if err := s.TripRepo.UpdateStatus(t.ID, target, approval); err != nil {
		return t, err
	}
	t.Status = target
	t.TransportApproval = approval

	s.postNote(repositories.TargetTrip, t.ID, transitionNote(action))
	utils.LogEvent(s.RequestID, "trip", action, fmt.Sprintf("trip_id=%d status=%s", t.ID, target))
	return t, nil
}

func transitionNote(action string) string {
	switch action {
	case models.ActionSubmit:
		return "تم إرسال الطلب إلى قائد المدرسة للمراجعة."
	case models.ActionLeaderApprove:
		return "تم تحويل الطلب إلى مسؤول النقل للاعتماد النهائي."
	case models.ActionApprove:
		return "تم اعتماد الطلب نهائيًا من مسؤول النقل."
	case models.ActionCancel:
		return "تم إلغاء الطلب."
	case models.ActionReset:
		return "تم إعادة الطلب إلى حالة المسودة."
	}
	return action
}

// Delete removes the trip after clearing the event link. The event record
// itself always survives a trip deletion.
func (s TripService) Delete(id int64) error {
	t, err := s.TripRepo.GetByID(id)
	if err != nil {
		return err
	}

	if t.EventID != nil {
		s.unlinkEvent(&t, fmt.Sprintf("تم حذف طلب الرحلة المرتبط: %s", t.Name))
	}

	if err := s.TripRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trip", "delete", fmt.Sprintf("trip_id=%d", id))
	return nil
}

// unlinkEvent clears both halves of the reciprocal link and posts the
// given note on the event. Link clearing failures are logged, not fatal:
// the triggering action (cancel, delete) must proceed.
func (s TripService) unlinkEvent(t *models.TripRequest, eventNote string) {
	eventID := *t.EventID
	if err := s.TripRepo.SetEventID(t.ID, nil); err != nil {
		utils.LogEvent(s.RequestID, "trip", "unlink", "clear trip side failed: "+err.Error())
		return
	}
	if err := s.EventRepo.SetTripID(eventID, nil); err != nil {
		utils.LogEvent(s.RequestID, "trip", "unlink", "clear event side failed: "+err.Error())
	}
	t.EventID = nil
	s.postNote(repositories.TargetEvent, eventID, eventNote)
}

// LinkedEvent resolves the event a trip points at.
func (s TripService) LinkedEvent(id int64) (models.Event, error) {
	t, err := s.TripRepo.GetByID(id)
	if err != nil {
		return models.Event{}, err
	}
	if t.EventID == nil {
		return models.Event{}, domain.ActionError{Action: "view_event", Msg: "no event linked to this trip request"}
	}
	return s.EventRepo.GetByID(*t.EventID)
}

func (s TripService) Notes(id int64) ([]models.AuditNote, error) {
	if _, err := s.TripRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.Audit.ListNotes(repositories.TargetTrip, id)
}

// postNote appends to the activity log best-effort.
func (s TripService) postNote(targetType string, targetID int64, body string) {
	if err := s.Audit.PostNote(targetType, targetID, body); err != nil {
		utils.LogEvent(s.RequestID, "trip", "note", "post note failed: "+err.Error())
	}
}

func tripFromPayload(p models.TripPayload) models.TripRequest {
	return models.TripRequest{
		Name:             strings.TrimSpace(p.Name),
		TripType:         p.TripType,
		DateFrom:         strings.TrimSpace(p.DateFrom),
		DayName:          utils.ArabicDayName(p.DateFrom),
		StudentsCount:    p.StudentsCount,
		BusesCount:       p.BusesCount,
		DirectionFrom:    strings.TrimSpace(p.DirectionFrom),
		DirectionTo:      strings.TrimSpace(p.DirectionTo),
		SchoolIDs:        p.SchoolIDs,
		TripPurpose:      strings.TrimSpace(p.TripPurpose),
		Stage:            p.Stage,
		ApplicantName:    strings.TrimSpace(p.ApplicantName),
		ApplicantMobile:  strings.TrimSpace(p.ApplicantMobile),
		SchoolLeaderName: strings.TrimSpace(p.SchoolLeaderName),
	}
}

func joinSchoolNames(names []string) string {
	if len(names) == 0 {
		return models.Unspecified
	}
	return strings.Join(names, ", ")
}

func validateTripPayload(p models.TripPayload) error {
	if !models.ValidTripType(p.TripType) {
		return domain.ValidationError{Field: "trip_type", Msg: "نوع الرحلة غير صالح."}
	}
	if !models.ValidStage(p.Stage) {
		return domain.ValidationError{Field: "stage", Msg: "المرحلة الدراسية غير صالحة."}
	}
	if _, err := utils.ParseDate(p.DateFrom); err != nil {
		return domain.ValidationError{Field: "date_from", Msg: "تاريخ الرحلة غير صالح.", Err: err}
	}
	if p.StudentsCount <= 0 {
		return domain.ValidationError{Field: "students_count", Msg: "عدد الطلاب يجب أن يكون أكبر من صفر."}
	}
	if p.BusesCount <= 0 {
		return domain.ValidationError{Field: "buses_count", Msg: "عدد الحافلات يجب أن يكون أكبر من صفر."}
	}
	if m := strings.TrimSpace(p.ApplicantMobile); m != "" && !utils.ValidSaudiMobile(m) {
		return domain.ValidationError{
			Field: "applicant_mobile",
			Msg:   "رقم الجوال يجب أن يبدأ بـ 05 ويتكون من 10 أرقام صحيحة.",
		}
	}
	return nil
}
