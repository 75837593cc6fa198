package models

import "testing"

func TestLifecycleTransitions(t *testing.T) {
	cases := []struct {
		action string
		from   string
		ok     bool
	}{
		{ActionSubmit, StatusDraft, true},
		{ActionSubmit, StatusLeader, false},
		{ActionSubmit, StatusApproved, false},
		{ActionLeaderApprove, StatusLeader, true},
		{ActionLeaderApprove, StatusDraft, false},
		{ActionApprove, StatusTransport, true},
		{ActionApprove, StatusLeader, false},
		{ActionCancel, StatusDraft, true},
		{ActionCancel, StatusApproved, true},
		{ActionReset, StatusCancelled, true},
		{ActionReset, StatusApproved, true},
		{"unknown", StatusDraft, false},
	}
	for _, tc := range cases {
		if got := ValidTransition(tc.action, tc.from); got != tc.ok {
			t.Fatalf("transition %s from %s: got %v want %v", tc.action, tc.from, got, tc.ok)
		}
	}
}

func TestTransitionTargets(t *testing.T) {
	targets := map[string]string{
		ActionSubmit:        StatusLeader,
		ActionLeaderApprove: StatusTransport,
		ActionApprove:       StatusApproved,
		ActionCancel:        StatusCancelled,
		ActionReset:         StatusDraft,
	}
	for action, want := range targets {
		got, ok := TransitionTarget(action)
		if !ok || got != want {
			t.Fatalf("target of %s: got %q want %q", action, got, want)
		}
	}
	if _, ok := TransitionTarget("unknown"); ok {
		t.Fatalf("unknown action should have no target")
	}
}

func TestEventComputeFlags(t *testing.T) {
	tripID := int64(4)

	e := Event{EventTypeCode: EventTypeSchoolTrip}
	e.ComputeFlags()
	if !e.IsSchoolTrip || !e.CanCreateTrip {
		t.Fatalf("school trip event without link should allow trip creation")
	}

	e.TripID = &tripID
	e.ComputeFlags()
	if !e.IsSchoolTrip || e.CanCreateTrip {
		t.Fatalf("linked school trip event must not allow a second trip")
	}

	other := Event{EventTypeCode: "conference"}
	other.ComputeFlags()
	if other.IsSchoolTrip || other.CanCreateTrip {
		t.Fatalf("non school trip event must not allow trip creation")
	}
}
