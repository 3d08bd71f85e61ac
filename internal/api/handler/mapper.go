package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

// --- Request → Service input ---

func toProfileInput(req profileRequest) ports.ProfileInput {
	return ports.ProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Country:      req.Country,
		City:         req.City,
		Address:      req.Address,
		Bio:          req.Bio,
		Company:      req.Company,
		Position:     req.Position,
		Skills:       req.Skills,
		Languages:    req.Languages,
		AvatarURL:    req.AvatarURL,
		PortfolioURL: req.PortfolioURL,
		LinkedInURL:  req.LinkedInURL,
		GitHubURL:    req.GitHubURL,
		TwitterURL:   req.TwitterURL,
		InstagramURL: req.InstagramURL,
		WebsiteURL:   req.WebsiteURL,
		Role:         req.Role,
	}
}

func toJobDraft(req jobRequest) (domain.JobDraft, error) {
	expires, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return domain.JobDraft{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return domain.JobDraft{
		Title:       req.Title,
		Description: req.Description,
		SalaryRange: req.SalaryRange,
		ExpiresAt:   &expires,
		Status:      domain.JobStatus(req.Status),
		Company:     req.Company,
		Location:    req.Location,
		Remote:      req.Remote,
		Type:        req.Type,
	}, nil
}

func parseExpiry(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("expires_at must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

// --- Service output → Response ---

func toProfileResponse(st *ports.ProfileStatus) profileResponse {
	return profileResponse{
		Profile:    st.Profile,
		Missing:    st.Missing,
		Complete:   st.Complete,
		Completion: st.Completion,
	}
}
