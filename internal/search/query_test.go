package search

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"  Backend   Intern ":   "backend intern",
		"C++ / Go!":             "c go",
		"Full-Stack\tDeveloper": "fullstack developer",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpand_SingleWord(t *testing.T) {
	got := Expand("intern")
	want := []string{"intern", "internship", "magang"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpand_LeadingWord(t *testing.T) {
	got := Expand("backend jakarta")
	want := []string{"backend jakarta", "back end jakarta", "server developer jakarta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpand_CompactForm(t *testing.T) {
	got := Expand("full stack")
	want := []string{"full stack", "fullstack"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestProcess_Empty(t *testing.T) {
	q := Process("  !!  ")
	if q.Normalized != "" || len(q.Variants) != 0 {
		t.Fatalf("unexpected %+v", q)
	}
}
