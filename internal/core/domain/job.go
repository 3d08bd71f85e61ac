package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a posting.
type JobStatus string

const (
	JobStatusActive      JobStatus = "active"
	JobStatusInSelection JobStatus = "proceso de seleccion"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrValidation  = errors.New("validation failed")
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusInSelection
}

// Job is an advertised role.
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SalaryRange string     `json:"salary_range"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Status      JobStatus  `json:"status"`
	Company     string     `json:"company,omitempty"`
	Location    string     `json:"location,omitempty"`
	Remote      bool       `json:"remote"`
	Type        string     `json:"type,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Listed reports whether the job belongs in the public listing at now: it must
// be active and either have no expiry or expire no earlier than now.
func (j *Job) Listed(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	return j.ExpiresAt == nil || !j.ExpiresAt.Before(now)
}

// JobDraft is the writable part of a Job as submitted by an admin.
type JobDraft struct {
	Title       string
	Description string
	SalaryRange string
	ExpiresAt   *time.Time
	Status      JobStatus
	Company     string
	Location    string
	Remote      bool
	Type        string
}

// Normalize trims text fields and fills the default status.
func (d JobDraft) Normalize() JobDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.SalaryRange = strings.TrimSpace(d.SalaryRange)
	d.Company = strings.TrimSpace(d.Company)
	d.Location = strings.TrimSpace(d.Location)
	d.Type = strings.TrimSpace(d.Type)
	if d.Status == "" {
		d.Status = JobStatusActive
	}
	return d
}

// Validate checks a normalized draft. The expiry must fall on today's UTC date
// or later.
func (d JobDraft) Validate(now time.Time) error {
	switch {
	case d.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case d.Description == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case d.SalaryRange == "":
		return fmt.Errorf("%w: salary_range is required", ErrValidation)
	case d.ExpiresAt == nil:
		return fmt.Errorf("%w: expires_at is required", ErrValidation)
	case !d.Status.Valid():
		return fmt.Errorf("%w: status must be one of: %s, %s", ErrValidation, JobStatusActive, JobStatusInSelection)
	}

	today := startOfDay(now)
	if startOfDay(*d.ExpiresAt).Before(today) {
		return fmt.Errorf("%w: expires_at must not be in the past", ErrValidation)
	}
	return nil
}

// Apply copies the draft onto j.
func (d JobDraft) Apply(j *Job) {
	j.Title = d.Title
	j.Description = d.Description
	j.SalaryRange = d.SalaryRange
	j.ExpiresAt = d.ExpiresAt
	j.Status = d.Status
	j.Company = d.Company
	j.Location = d.Location
	j.Remote = d.Remote
	j.Type = d.Type
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
