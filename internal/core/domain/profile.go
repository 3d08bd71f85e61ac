package domain

import (
	"errors"
	"time"
)

// Role is the part a user plays on the board.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleClient    Role = "client"
)

// ProfileSchemaVersion is the version written by the current Profile shape.
// Version 1 documents were keyed by "id" and could carry legacy role values.
const ProfileSchemaVersion = 2

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrAvatarNotFound  = errors.New("avatar not found")
)

// NormalizeRole maps legacy role values onto the canonical set. Unknown values
// come back unchanged so validation can reject them.
func NormalizeRole(r string) Role {
	switch r {
	case "user":
		return RoleCandidate
	case "cliente":
		return RoleClient
	}
	return Role(r)
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleAdmin, RoleRecruiter, RoleClient:
		return true
	}
	return false
}

// Profile describes a user beyond bare authentication.
type Profile struct {
	UserID       string    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Country      string    `json:"country,omitempty"`
	City         string    `json:"city,omitempty"`
	Address      string    `json:"address,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Company      string    `json:"company,omitempty"`
	Position     string    `json:"position,omitempty"`
	Skills       []string  `json:"skills"`
	Languages    []string  `json:"languages"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	PortfolioURL string    `json:"portfolio_url,omitempty"`
	LinkedInURL  string    `json:"linkedin_url,omitempty"`
	GitHubURL    string    `json:"github_url,omitempty"`
	TwitterURL   string    `json:"twitter_url,omitempty"`
	InstagramURL string    `json:"instagram_url,omitempty"`
	WebsiteURL   string    `json:"website_url,omitempty"`
	Role         Role      `json:"role"`
	IsComplete   bool      `json:"is_complete"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// FullName joins first and last name, skipping empty parts.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// field returns the value stored under a profile attribute name. ok is false
// for names that are not part of the schema.
func (p *Profile) field(name string) (value any, ok bool) {
	switch name {
	case "first_name":
		return p.FirstName, true
	case "last_name":
		return p.LastName, true
	case "email":
		return p.Email, true
	case "phone":
		return p.Phone, true
	case "country":
		return p.Country, true
	case "city":
		return p.City, true
	case "address":
		return p.Address, true
	case "bio":
		return p.Bio, true
	case "company":
		return p.Company, true
	case "position":
		return p.Position, true
	case "skills":
		return p.Skills, true
	case "languages":
		return p.Languages, true
	case "avatar_url":
		return p.AvatarURL, true
	case "portfolio_url":
		return p.PortfolioURL, true
	case "linkedin_url":
		return p.LinkedInURL, true
	case "github_url":
		return p.GitHubURL, true
	case "twitter_url":
		return p.TwitterURL, true
	case "instagram_url":
		return p.InstagramURL, true
	case "website_url":
		return p.WebsiteURL, true
	case "role":
		return string(p.Role), true
	}
	return nil, false
}
