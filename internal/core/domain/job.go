package domain

import (
	"strings"
	"time"
)

// EmploymentType classifies a job posting.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
	EmploymentRemote     EmploymentType = "Remote"
)

// DateLayout is the format of PostedDate and ApplicationDeadline.
const DateLayout = "2006-01-02"

// Job is a single careers-page posting.
type Job struct {
	ID                  string         `json:"id" bson:"_id"`
	Slug                string         `json:"slug" bson:"slug"`
	Title               string         `json:"title" bson:"title"`
	EmploymentType      EmploymentType `json:"employmentType" bson:"employment_type"`
	Department          string         `json:"department" bson:"department"`
	Location            string         `json:"location" bson:"location"`
	ApplicationDeadline string         `json:"applicationDeadline" bson:"application_deadline"`
	Description         string         `json:"description" bson:"description"`
	Requirements        []string       `json:"requirements" bson:"requirements"`
	Responsibilities    []string       `json:"responsibilities" bson:"responsibilities"`
	Benefits            []string       `json:"benefits" bson:"benefits"`
	PostedDate          string         `json:"postedDate" bson:"posted_date"`
}

// Open reports whether applications are still accepted on the given day.
// A posting without a deadline, or with one that cannot be parsed, is open.
func (j *Job) Open(now time.Time) bool {
	deadline := strings.TrimSpace(j.ApplicationDeadline)
	if deadline == "" {
		return true
	}
	d, err := time.Parse(DateLayout, deadline)
	if err != nil {
		t, rerr := time.Parse(time.RFC3339, deadline)
		if rerr != nil {
			return true
		}
		d = t
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !last.Before(today)
}

// Matches reports whether the job satisfies every non-empty field of f.
func (j *Job) Matches(f JobFilter, now time.Time) bool {
	if f.Department != "" && !strings.EqualFold(j.Department, f.Department) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(j.Location, f.Location) {
		return false
	}
	if f.EmploymentType != "" && !strings.EqualFold(string(j.EmploymentType), f.EmploymentType) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(j.Title), q) && !strings.Contains(strings.ToLower(j.Description), q) {
			return false
		}
	}
	if f.OpenOnly && !j.Open(now) {
		return false
	}
	return true
}

// JobFilter narrows the public job listing. Empty fields match everything.
type JobFilter struct {
	Department     string
	Location       string
	EmploymentType string
	Query          string
	OpenOnly       bool
}
