package seeder

import (
	"context"
	"fmt"
	"time"

	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/repository"
)

// DemoJobsSeeder posts a few openings for the demo company. It skips when
// the company already has jobs.
type DemoJobsSeeder struct {
	Now func() time.Time
}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (s DemoJobsSeeder) Run(ctx context.Context, store repository.Store) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	owner, err := store.Users().GetByEmail(ctx, DemoCompanyEmail)
	if err != nil {
		return fmt.Errorf("demo company user: %w", err)
	}
	company, err := store.Companies().GetByUserID(ctx, owner.ID)
	if err != nil {
		return fmt.Errorf("demo company: %w", err)
	}
	existing, err := store.Jobs().ListByCompany(ctx, company.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	in := func(days int) *time.Time {
		t := now().UTC().AddDate(0, 0, days)
		return &t
	}
	salary := func(v int) *int { return &v }

	jobs := []job.Job{
		{
			Title:               "Backend Engineering Intern",
			Description:         "Build and operate Go services behind our hiring products.",
			Requirements:        "Comfortable with Go or another typed language; SQL basics.",
			JobType:             "internship",
			WorkMode:            job.WorkModeHybrid,
			Location:            "Jakarta",
			SalaryMin:           salary(4000000),
			SalaryMax:           salary(6000000),
			SalaryCurrency:      "IDR",
			RequiredSkills:      []profile.Skill{{Name: "Go", Level: 3}, {Name: "PostgreSQL", Level: 2}},
			ExperienceLevel:     "entry",
			ApplicationDeadline: in(21),
		},
		{
			Title:               "Frontend Developer",
			Description:         "Own the student-facing web app.",
			JobType:             "full_time",
			WorkMode:            job.WorkModeRemote,
			Location:            "Remote",
			SalaryCurrency:      "IDR",
			RequiredSkills:      []profile.Skill{{Name: "TypeScript", Level: 3}, {Name: "React", Level: 3}},
			ExperienceLevel:     "junior",
			ApplicationDeadline: in(5),
		},
		{
			Title:           "Data Analyst Intern",
			Description:     "Turn application funnels into weekly insight reports.",
			JobType:         "internship",
			WorkMode:        job.WorkModeOnsite,
			Location:        "Bandung",
			SalaryCurrency:  "IDR",
			RequiredSkills:  []profile.Skill{{Name: "SQL", Level: 3}, {Name: "Python", Level: 2}},
			ExperienceLevel: "entry",
		},
	}

	for _, j := range jobs {
		j.CompanyID = company.ID
		j.IsActive = true
		j.PositionsAvailable = 1
		if _, err := store.Jobs().Create(ctx, j); err != nil {
			return fmt.Errorf("create %q: %w", j.Title, err)
		}
	}
	return nil
}
