package matching

import (
	"math"
	"strings"

	"studentshub/internal/domain/profile"
)

const (
	skillWeight    = 70.0
	locationWeight = 20.0
	jobTypeWeight  = 10.0
)

type Candidate struct {
	Skills            []profile.Skill
	Location          string
	PreferredJobTypes []string
}

type Opening struct {
	RequiredSkills []profile.Skill
	Location       string
	JobType        string
	RemoteFriendly bool
}

type Result struct {
	Score         int
	MatchedSkills []string
	MissingSkills []string
}

// Calculate scores a candidate against an opening on a 0..100 scale. The
// result depends only on its inputs.
func Calculate(c Candidate, o Opening) Result {
	have := make(map[string]profile.Skill, len(c.Skills))
	for _, s := range c.Skills {
		key := skillKey(s.Name)
		if key == "" {
			continue
		}
		if prev, ok := have[key]; ok && prev.Level >= s.Level {
			continue
		}
		have[key] = s
	}

	reqs := make([]profile.Skill, 0, len(o.RequiredSkills))
	for _, r := range o.RequiredSkills {
		if skillKey(r.Name) != "" {
			reqs = append(reqs, r)
		}
	}

	matched := make([]string, 0, len(reqs))
	missing := make([]string, 0)

	skillTotal := skillWeight
	if len(reqs) > 0 {
		skillTotal = 0
		per := skillWeight / float64(len(reqs))
		for _, r := range reqs {
			s, ok := have[skillKey(r.Name)]
			if !ok {
				missing = append(missing, r.Name)
				continue
			}
			matched = append(matched, r.Name)
			skillTotal += per * levelRatio(s.Level, r.Level)
		}
	}

	total := skillTotal + locationScore(c.Location, o) + jobTypeScore(c.PreferredJobTypes, o.JobType)

	return Result{
		Score:         clampInt(int(math.Round(total)), 0, 100),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

func levelRatio(have, want int) float64 {
	usr := clampInt(have, 0, 5)
	req := clampInt(want, 1, 5)
	if usr <= 0 {
		return 0
	}
	if usr >= req {
		return 1
	}
	return float64(usr) / float64(req)
}

func locationScore(candidate string, o Opening) float64 {
	if o.RemoteFriendly {
		return locationWeight
	}
	c := strings.ToLower(strings.TrimSpace(candidate))
	j := strings.ToLower(strings.TrimSpace(o.Location))
	if c == "" || j == "" {
		return 0
	}
	if strings.Contains(j, c) || strings.Contains(c, j) {
		return locationWeight
	}
	return 0
}

func jobTypeScore(preferred []string, jobType string) float64 {
	if len(preferred) == 0 {
		return jobTypeWeight / 2
	}
	jt := strings.ToLower(strings.TrimSpace(jobType))
	for _, p := range preferred {
		if strings.ToLower(strings.TrimSpace(p)) == jt {
			return jobTypeWeight
		}
	}
	return 0
}

func skillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
