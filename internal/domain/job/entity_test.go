package job

import (
	"errors"
	"testing"
	"time"
)

func TestAcceptsApplications(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		job  Job
		want bool
	}{
		{"active no deadline", Job{IsActive: true}, true},
		{"active future deadline", Job{IsActive: true, ApplicationDeadline: &future}, true},
		{"active deadline now", Job{IsActive: true, ApplicationDeadline: &now}, true},
		{"active past deadline", Job{IsActive: true, ApplicationDeadline: &past}, false},
		{"inactive", Job{IsActive: false}, false},
	}
	for _, tc := range cases {
		if got := tc.job.AcceptsApplications(now); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	lo, hi := 5000, 1000
	j := Job{Title: "Intern", Description: "d", Location: "Berlin", JobType: "internship", PositionsAvailable: 1, SalaryMin: &lo, SalaryMax: &hi}
	if err := j.Validate(); !errors.Is(err, ErrInvalidJob) {
		t.Fatalf("expected salary range error, got %v", err)
	}

	j.SalaryMin, j.SalaryMax = nil, nil
	if err := j.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := (Job{PositionsAvailable: 1}).Validate(); !errors.Is(err, ErrInvalidJob) {
		t.Fatalf("expected missing fields error, got %v", err)
	}
}

func TestIsRemoteFriendly(t *testing.T) {
	if !(Job{WorkMode: WorkModeHybrid}).IsRemoteFriendly() {
		t.Fatalf("hybrid should be remote friendly")
	}
	if !(Job{WorkMode: WorkModeOnsite, Location: "Remote (EU)"}).IsRemoteFriendly() {
		t.Fatalf("remote location should be remote friendly")
	}
	if (Job{WorkMode: WorkModeOnsite, Location: "Lagos"}).IsRemoteFriendly() {
		t.Fatalf("onsite Lagos should not be remote friendly")
	}
}
