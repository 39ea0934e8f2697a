package matching

import (
	"reflect"
	"testing"

	"studentshub/internal/domain/profile"
)

func TestCalculate_FullMatch(t *testing.T) {
	c := Candidate{
		Skills:            []profile.Skill{{Name: "Go", Level: 5}, {Name: "sql", Level: 3}},
		Location:          "Nairobi",
		PreferredJobTypes: []string{"Internship"},
	}
	o := Opening{
		RequiredSkills: []profile.Skill{{Name: "go", Level: 3}, {Name: "SQL", Level: 3}},
		Location:       "Nairobi, Kenya",
		JobType:        "internship",
	}

	res := Calculate(c, o)
	if res.Score != 100 {
		t.Fatalf("expected 100, got %d", res.Score)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", res.MissingSkills)
	}
}

func TestCalculate_PartialMatch(t *testing.T) {
	c := Candidate{Skills: []profile.Skill{{Name: "Go", Level: 2}}, Location: "Accra"}
	o := Opening{
		RequiredSkills: []profile.Skill{{Name: "Go", Level: 4}, {Name: "Kubernetes", Level: 2}},
		Location:       "Lagos",
		JobType:        "full-time",
	}

	res := Calculate(c, o)
	// Go half-covered on a 35 point slot, no location, neutral job type.
	if res.Score != 23 {
		t.Fatalf("expected 23, got %d", res.Score)
	}
	if !reflect.DeepEqual(res.MissingSkills, []string{"Kubernetes"}) {
		t.Fatalf("unexpected missing skills %v", res.MissingSkills)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	c := Candidate{Skills: []profile.Skill{{Name: "Python", Level: 3}}}
	o := Opening{RequiredSkills: []profile.Skill{{Name: "Python", Level: 5}}, RemoteFriendly: true}

	first := Calculate(c, o).Score
	for i := 0; i < 20; i++ {
		if got := Calculate(c, o).Score; got != first {
			t.Fatalf("score changed between calls: %d vs %d", first, got)
		}
	}
	if first < 0 || first > 100 {
		t.Fatalf("score out of range: %d", first)
	}
}
