package models

// Trip request lifecycle statuses. Wire values follow the stored enum.
const (
	StatusDraft     = "draft"
	StatusLeader    = "leader"
	StatusTransport = "transport"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Trip type and school stage enums.
const (
	TripTypeActivity = "activity"
	TripTypeEvening  = "evening"
	TripTypeOther    = "other"

	StageKindergarten = "kg"
	StagePrimary      = "primary"
	StageMiddle       = "middle"
	StageSecondary    = "secondary"
)

// Unspecified is the sentinel shown when a value was never filled in
// (school names, destination, leader name on auto-created requests).
const Unspecified = "غير محدد"

// Lifecycle actions on a trip request.
const (
	ActionSubmit        = "submit"
	ActionLeaderApprove = "leader_approve"
	ActionApprove       = "approve"
	ActionCancel        = "cancel"
	ActionReset         = "reset"
)

// transitionMap lists, per action, the statuses the action may start from.
// Cancel and reset are reachable from anywhere.
var transitionMap = map[string][]string{
	ActionSubmit:        {StatusDraft},
	ActionLeaderApprove: {StatusLeader},
	ActionApprove:       {StatusTransport},
	ActionCancel:        {StatusDraft, StatusLeader, StatusTransport, StatusApproved, StatusCancelled},
	ActionReset:         {StatusDraft, StatusLeader, StatusTransport, StatusApproved, StatusCancelled},
}

// nextStatus maps an action to the status it lands on.
var nextStatus = map[string]string{
	ActionSubmit:        StatusLeader,
	ActionLeaderApprove: StatusTransport,
	ActionApprove:       StatusApproved,
	ActionCancel:        StatusCancelled,
	ActionReset:         StatusDraft,
}

// ValidTransition reports whether the action may fire from fromStatus.
func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

// TransitionTarget returns the status an action leads to.
func TransitionTarget(action string) (string, bool) {
	s, ok := nextStatus[action]
	return s, ok
}

// ValidTripType reports whether t is one of the trip type enum values.
func ValidTripType(t string) bool {
	switch t {
	case TripTypeActivity, TripTypeEvening, TripTypeOther:
		return true
	}
	return false
}

// ValidStage reports whether s is one of the school stage enum values.
func ValidStage(s string) bool {
	switch s {
	case StageKindergarten, StagePrimary, StageMiddle, StageSecondary:
		return true
	}
	return false
}

// TripRequest is the primary record of the module. Name is assigned once
// from the sequence counter and never changes afterward. EventID carries
// the optional reciprocal link to an event.
type TripRequest struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	TripType          string   `json:"tripType"`
	DateFrom          string   `json:"dateFrom"` // YYYY-MM-DD
	DayName           string   `json:"dayName"`
	StudentsCount     int      `json:"studentsCount"`
	BusesCount        int      `json:"busesCount"`
	DirectionFrom     string   `json:"directionFrom,omitempty"`
	DirectionTo       string   `json:"directionTo"`
	SchoolIDs         []int64  `json:"schoolIds,omitempty"`
	SchoolNames       string   `json:"schoolNames"`
	TripPurpose       string   `json:"tripPurpose"`
	Stage             string   `json:"stage"`
	ApplicantName     string   `json:"applicantName"`
	ApplicantMobile   string   `json:"applicantMobile,omitempty"`
	SchoolLeaderName  string   `json:"schoolLeaderName"`
	TransportApproval bool     `json:"transportApproval"`
	Status            string   `json:"status"`
	EventID           *int64   `json:"eventId,omitempty"`
	BusLines          []BusLine `json:"busLines,omitempty"`
}

// TripPayload is the create/update body for a trip request. Name may only
// be supplied on create; when empty the sequence service assigns it.
type TripPayload struct {
	Name             string  `json:"name"`
	TripType         string  `json:"tripType" binding:"required"`
	DateFrom         string  `json:"dateFrom" binding:"required"`
	StudentsCount    int     `json:"studentsCount" binding:"required"`
	BusesCount       int     `json:"busesCount" binding:"required"`
	DirectionFrom    string  `json:"directionFrom"`
	DirectionTo      string  `json:"directionTo" binding:"required"`
	SchoolIDs        []int64 `json:"schoolIds"`
	TripPurpose      string  `json:"tripPurpose" binding:"required"`
	Stage            string  `json:"stage" binding:"required"`
	ApplicantName    string  `json:"applicantName" binding:"required"`
	ApplicantMobile  string  `json:"applicantMobile" binding:"omitempty,saudimobile"`
	SchoolLeaderName string  `json:"schoolLeaderName" binding:"required"`
}
