package handler

import (
	"time"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// --- Auth ---

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *domain.User   `json:"user"`
	Landing   domain.Landing `json:"landing"`
}

type meResponse struct {
	UserID     string         `json:"user_id"`
	Email      string         `json:"email"`
	Role       domain.Role    `json:"role,omitempty"`
	IsAdmin    bool           `json:"is_admin"`
	Complete   bool           `json:"is_complete"`
	Completion int            `json:"completion"`
	Missing    []string       `json:"missing"`
	Landing    domain.Landing `json:"landing"`
}

// --- Profile ---

type profileRequest struct {
	FirstName    string   `json:"first_name" validate:"max=100"`
	LastName     string   `json:"last_name" validate:"max=100"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone" validate:"max=40"`
	Country      string   `json:"country" validate:"max=100"`
	City         string   `json:"city" validate:"max=100"`
	Address      string   `json:"address" validate:"max=200"`
	Bio          string   `json:"bio" validate:"max=2000"`
	Company      string   `json:"company" validate:"max=200"`
	Position     string   `json:"position" validate:"max=200"`
	Skills       []string `json:"skills"`
	Languages    []string `json:"languages"`
	AvatarURL    string   `json:"avatar_url" validate:"omitempty,url"`
	PortfolioURL string   `json:"portfolio_url" validate:"omitempty,url"`
	LinkedInURL  string   `json:"linkedin_url" validate:"omitempty,url"`
	GitHubURL    string   `json:"github_url" validate:"omitempty,url"`
	TwitterURL   string   `json:"twitter_url" validate:"omitempty,url"`
	InstagramURL string   `json:"instagram_url" validate:"omitempty,url"`
	WebsiteURL   string   `json:"website_url" validate:"omitempty,url"`
	Role         string   `json:"role"`
}

type profileResponse struct {
	Profile    *domain.Profile `json:"profile"`
	Missing    []string        `json:"missing"`
	Complete   bool            `json:"is_complete"`
	Completion int             `json:"completion"`
}

type avatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// --- Jobs ---

type jobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	SalaryRange string `json:"salary_range" validate:"required,max=100"`
	// ExpiresAt accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
	ExpiresAt string `json:"expires_at" validate:"required"`
	Status    string `json:"status"`
	Company   string `json:"company" validate:"max=200"`
	Location  string `json:"location" validate:"max=200"`
	Remote    bool   `json:"remote"`
	Type      string `json:"type" validate:"max=50"`
}

type jobListResponse struct {
	Jobs  []domain.Job `json:"jobs"`
	Total int          `json:"total"`
}

type deleteJobRequest struct {
	JobID string `json:"jobId"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// --- Applications ---

type applicationRequest struct {
	CoverLetter string `json:"cover_letter" validate:"max=5000"`
}

type applicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type applicationListResponse struct {
	Applications []domain.ApplicationView `json:"applications"`
}

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
