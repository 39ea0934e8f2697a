package handler

import "studentshub/internal/domain/profile"

type skillRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type educationRequest struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type workExperienceRequest struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

func toSkills(in []skillRequest) []profile.Skill {
	out := make([]profile.Skill, 0, len(in))
	for _, s := range in {
		out = append(out, profile.Skill{Name: s.Name, Level: s.Level})
	}
	return out
}

func toEducation(in []educationRequest) []profile.EducationEntry {
	out := make([]profile.EducationEntry, 0, len(in))
	for _, e := range in {
		out = append(out, profile.EducationEntry(e))
	}
	return out
}

func toWorkExperience(in []workExperienceRequest) []profile.WorkExperience {
	out := make([]profile.WorkExperience, 0, len(in))
	for _, w := range in {
		out = append(out, profile.WorkExperience(w))
	}
	return out
}
