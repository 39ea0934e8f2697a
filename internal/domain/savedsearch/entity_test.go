package savedsearch

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeQuery(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "  backend   intern ", want: "backend intern"},
		{in: "Go", want: "Go"},
		{in: " \t ", wantErr: ErrEmptyQuery},
		{in: strings.Repeat("é", MaxQueryLength), want: strings.Repeat("é", MaxQueryLength)},
		{in: strings.Repeat("a", MaxQueryLength+1), wantErr: ErrQueryTooLong},
	}
	for _, tc := range cases {
		got, err := NormalizeQuery(tc.in)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NormalizeQuery(%q): expected %v, got %v", tc.in, tc.wantErr, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("NormalizeQuery(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestJobFilter(t *testing.T) {
	s := SavedSearch{
		Query:   "frontend",
		Filters: Filters{JobType: " Internship ", Location: " Bandung ", Remote: true}.Normalize(),
	}
	f := s.JobFilter()
	if f.Search != "frontend" || f.JobType != "internship" || f.Location != "Bandung" || !f.RemoteOnly {
		t.Fatalf("unexpected filter %+v", f)
	}
}
