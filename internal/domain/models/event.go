package models

// EventTypeSchoolTrip is the well-known event category code that marks an
// event as a school trip and enables the trip-request link.
const EventTypeSchoolTrip = "school_trip"

// Event is the calendar record owned by the scheduling subsystem. This
// module only relies on the extension contract: TripID (reciprocal link),
// IsSchoolTrip and CanCreateTrip, both derived at read time.
type Event struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	EventTypeID     int64  `json:"eventTypeId"`
	EventTypeCode   string `json:"eventTypeCode,omitempty"`
	DateBegin       string `json:"dateBegin"` // YYYY-MM-DD
	DateEnd         string `json:"dateEnd"`
	SeatsMax        int    `json:"seatsMax"`
	Address         string `json:"address,omitempty"`
	OrganizerName   string `json:"organizerName,omitempty"`
	OrganizerMobile string `json:"organizerMobile,omitempty"`
	TripID          *int64 `json:"tripId,omitempty"`
	IsSchoolTrip    bool   `json:"isSchoolTrip"`
	CanCreateTrip   bool   `json:"canCreateTrip"`
}

// EventPayload is the create/update body for an event.
type EventPayload struct {
	Name            string `json:"name" binding:"required"`
	EventTypeID     int64  `json:"eventTypeId" binding:"required"`
	DateBegin       string `json:"dateBegin" binding:"required"`
	DateEnd         string `json:"dateEnd"`
	SeatsMax        int    `json:"seatsMax"`
	Address         string `json:"address"`
	OrganizerName   string `json:"organizerName"`
	OrganizerMobile string `json:"organizerMobile" binding:"omitempty,saudimobile"`
}

// ComputeFlags fills the derived extension booleans from the event type
// code and the link state.
func (e *Event) ComputeFlags() {
	e.IsSchoolTrip = e.EventTypeCode == EventTypeSchoolTrip
	e.CanCreateTrip = e.IsSchoolTrip && e.TripID == nil
}

// AuditNote is one timestamped entry in a record's activity log.
type AuditNote struct {
	ID         int64  `json:"id"`
	TargetType string `json:"targetType"` // "trip" or "event"
	TargetID   int64  `json:"targetId"`
	Body       string `json:"body"`
	CreatedAt  string `json:"createdAt"`
}
