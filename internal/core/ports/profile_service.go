package ports

import (
	"context"
	"io"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// ProfileInput carries the editable attributes of a profile. Completeness and
// timestamps are always derived server-side.
type ProfileInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Country      string
	City         string
	Address      string
	Bio          string
	Company      string
	Position     string
	Skills       []string
	Languages    []string
	AvatarURL    string
	PortfolioURL string
	LinkedInURL  string
	GitHubURL    string
	TwitterURL   string
	InstagramURL string
	WebsiteURL   string
	Role         string
}

// ProfileStatus is a profile together with its evaluated completeness.
// Profile is nil when the user has not saved one yet.
type ProfileStatus struct {
	Profile    *domain.Profile
	Missing    []string
	Complete   bool
	Completion int
}

// AvatarUpload is an image submitted for a user's avatar.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*ProfileStatus, error)
	Save(ctx context.Context, userID string, input ProfileInput) (*ProfileStatus, error)
	// Evaluate reports completeness for an unsaved draft.
	Evaluate(input ProfileInput) *ProfileStatus
	RoleOf(ctx context.Context, userID string) (domain.Role, error)
	UploadAvatar(ctx context.Context, userID string, upload AvatarUpload) (string, error)
}

// AvatarStorage stores avatar images and serves them back by path.
type AvatarStorage interface {
	// Upload stores content under path and returns its public URL.
	Upload(ctx context.Context, path, contentType string, content io.Reader) (string, error)
	// Open returns the stored file and its content type.
	Open(ctx context.Context, path string) (io.ReadCloser, string, error)
}
