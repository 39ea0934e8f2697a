package application

import (
	"errors"
	"testing"
)

func TestCanTransition_FullGrid(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusReviewing}:              true,
		{StatusReviewing, StatusShortlisted}:          true,
		{StatusShortlisted, StatusInterviewScheduled}: true,
		{StatusInterviewScheduled, StatusHired}:       true,
		{StatusInterviewScheduled, StatusRejected}:    true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := allowed[[2]Status{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
			err := ValidateTransition(from, to)
			if want && err != nil {
				t.Fatalf("ValidateTransition(%s, %s) unexpected err: %v", from, to, err)
			}
			if !want && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("ValidateTransition(%s, %s) expected ErrInvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestCanWithdraw(t *testing.T) {
	for _, st := range AllStatuses {
		want := st == StatusPending || st == StatusReviewing || st == StatusShortlisted || st == StatusInterviewScheduled
		if got := CanWithdraw(st); got != want {
			t.Fatalf("CanWithdraw(%s) = %v, want %v", st, got, want)
		}
	}
}

func TestTerminalStatesHaveNoSuccessors(t *testing.T) {
	for _, st := range AllStatuses {
		if st.IsTerminal() && len(NextStatuses(st)) != 0 {
			t.Fatalf("terminal status %s has successors", st)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Interview_Scheduled ")
	if err != nil || st != StatusInterviewScheduled {
		t.Fatalf("unexpected result %q %v", st, err)
	}
	if _, err := ParseStatus("accepted"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}
