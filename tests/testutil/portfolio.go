package testutil

import "github.com/nhle/portfolio-term/internal/model"

// SamplePortfolio returns a small, fully populated snapshot for tests.
func SamplePortfolio() *model.PortfolioData {
	return &model.PortfolioData{
		Personal: model.PersonalInfo{
			Name:     "Suraj Kumar",
			Location: "New Delhi, India",
			Phone:    "+91 90000 00000",
			Email:    "suraj@example.dev",
			LinkedIn: "linkedin.com/in/surajkumar",
			GitHub:   "github.com/surajkumar",
		},
		Summary: "Full-stack engineer who ships.",
		Skills: model.Skills{
			{Category: "Languages", Items: []string{"TypeScript", "Go", "Python"}},
			{Category: "Cloud", Items: []string{"AWS", "Docker"}},
			{Category: "Databases", Items: []string{"PostgreSQL", "Redis"}},
		},
		Experience: []model.ExperienceEntry{
			{
				Company:    "Acme Corp",
				Role:       "Software Engineer",
				Period:     "2023 - Present",
				Location:   "Remote",
				Highlights: []string{"Built the billing pipeline", "Cut p99 latency in half"},
			},
			{
				Company:    "Initech",
				Role:       "Intern",
				Period:     "2022",
				Location:   "Gurugram",
				Highlights: []string{"Wrote the TPS report generator"},
			},
		},
		Projects: []model.ProjectEntry{
			{Name: "Terminal Portfolio", Tech: []string{"React", "Node.js"}, Highlights: []string{"Hybrid CLI and AI input"}},
			{Name: "Chat Relay", Tech: []string{"Go", "Redis"}, Highlights: []string{"Fan-out over websockets"}},
		},
		Education: model.Education{
			Degree:      "B.Tech Computer Science",
			Institution: "Delhi Technological University",
			Location:    "New Delhi",
			Period:      "2018 - 2022",
		},
		Certifications: []string{"AWS Certified Developer", "CKA"},
	}
}
