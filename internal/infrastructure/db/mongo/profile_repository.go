package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentboard/jobboard/internal/core/domain"
)

const collectionProfiles = "profiles"

// ProfileRepository implements ports.ProfileRepository using MongoDB.
//
// Older documents were keyed by an "id" field holding the user id and used the
// roles "user" and "cliente". They are rewritten to the current shape the
// first time they are read.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(collectionProfiles)}
}

type profileDocument struct {
	UserID        string    `bson:"user_id,omitempty"`
	LegacyID      string    `bson:"id,omitempty"`
	SchemaVersion int       `bson:"schema_version,omitempty"`
	FirstName     string    `bson:"first_name"`
	LastName      string    `bson:"last_name"`
	Email         string    `bson:"email"`
	Phone         string    `bson:"phone"`
	Country       string    `bson:"country"`
	City          string    `bson:"city"`
	Address       string    `bson:"address"`
	Bio           string    `bson:"bio"`
	Company       string    `bson:"company"`
	Position      string    `bson:"position"`
	Skills        []string  `bson:"skills"`
	Languages     []string  `bson:"languages"`
	AvatarURL     string    `bson:"avatar_url"`
	PortfolioURL  string    `bson:"portfolio_url"`
	LinkedInURL   string    `bson:"linkedin_url"`
	GitHubURL     string    `bson:"github_url"`
	TwitterURL    string    `bson:"twitter_url"`
	InstagramURL  string    `bson:"instagram_url"`
	WebsiteURL    string    `bson:"website_url"`
	Role          string    `bson:"role"`
	IsComplete    bool      `bson:"is_complete"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func ownerFilter(userID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"user_id": userID},
		bson.M{"id": userID},
	}}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDocument
	if err := r.coll.FindOne(ctx, ownerFilter(userID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p := doc.toDomain(userID)
	if needsMigration(&doc) {
		if err := r.write(ctx, p); err != nil {
			return nil, fmt.Errorf("migrate profile: %w", err)
		}
	}
	return p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.write(ctx, p); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) write(ctx context.Context, p *domain.Profile) error {
	doc := fromDomainProfile(p)
	update := bson.M{
		"$set":         doc,
		"$unset":       bson.M{"id": ""},
		"$setOnInsert": bson.M{"created_at": p.CreatedAt.UTC()},
	}
	_, err := r.coll.UpdateOne(ctx, ownerFilter(p.UserID), update, options.Update().SetUpsert(true))
	return err
}

func needsMigration(doc *profileDocument) bool {
	if doc.UserID == "" || doc.LegacyID != "" || doc.SchemaVersion < domain.ProfileSchemaVersion {
		return true
	}
	return storedRole(doc.Role) != domain.Role(doc.Role)
}

// storedRole maps legacy role names and defaults a missing role to candidate.
func storedRole(r string) domain.Role {
	role := domain.NormalizeRole(r)
	if role == "" {
		return domain.RoleCandidate
	}
	return role
}

func (d *profileDocument) toDomain(userID string) *domain.Profile {
	role := storedRole(d.Role)
	return &domain.Profile{
		UserID:       userID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		Phone:        d.Phone,
		Country:      d.Country,
		City:         d.City,
		Address:      d.Address,
		Bio:          d.Bio,
		Company:      d.Company,
		Position:     d.Position,
		Skills:       nonNil(d.Skills),
		Languages:    nonNil(d.Languages),
		AvatarURL:    d.AvatarURL,
		PortfolioURL: d.PortfolioURL,
		LinkedInURL:  d.LinkedInURL,
		GitHubURL:    d.GitHubURL,
		TwitterURL:   d.TwitterURL,
		InstagramURL: d.InstagramURL,
		WebsiteURL:   d.WebsiteURL,
		Role:         role,
		IsComplete:   d.IsComplete,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// fromDomainProfile builds the $set document. created_at is left to
// $setOnInsert so an upsert never rewrites it.
func fromDomainProfile(p *domain.Profile) bson.M {
	return bson.M{
		"user_id":        p.UserID,
		"schema_version": domain.ProfileSchemaVersion,
		"first_name":     p.FirstName,
		"last_name":      p.LastName,
		"email":          p.Email,
		"phone":          p.Phone,
		"country":        p.Country,
		"city":           p.City,
		"address":        p.Address,
		"bio":            p.Bio,
		"company":        p.Company,
		"position":       p.Position,
		"skills":         nonNil(p.Skills),
		"languages":      nonNil(p.Languages),
		"avatar_url":     p.AvatarURL,
		"portfolio_url":  p.PortfolioURL,
		"linkedin_url":   p.LinkedInURL,
		"github_url":     p.GitHubURL,
		"twitter_url":    p.TwitterURL,
		"instagram_url":  p.InstagramURL,
		"website_url":    p.WebsiteURL,
		"role":           string(p.Role),
		"is_complete":    p.IsComplete,
		"updated_at":     p.UpdatedAt.UTC(),
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
