package mongo

import (
	"testing"
	"time"

	"github.com/talentboard/jobboard/internal/core/domain"
)

func TestProfileDocument_Migration(t *testing.T) {
	cases := []struct {
		name     string
		doc      profileDocument
		migrate  bool
		wantRole domain.Role
	}{
		{
			name:     "legacy id document",
			doc:      profileDocument{LegacyID: "u1", Role: "candidate"},
			migrate:  true,
			wantRole: domain.RoleCandidate,
		},
		{
			name:     "legacy cliente role",
			doc:      profileDocument{UserID: "u1", SchemaVersion: domain.ProfileSchemaVersion, Role: "cliente"},
			migrate:  true,
			wantRole: domain.RoleClient,
		},
		{
			name:     "legacy user role",
			doc:      profileDocument{UserID: "u1", SchemaVersion: domain.ProfileSchemaVersion, Role: "user"},
			migrate:  true,
			wantRole: domain.RoleCandidate,
		},
		{
			name:     "empty role defaults to candidate",
			doc:      profileDocument{UserID: "u1", SchemaVersion: domain.ProfileSchemaVersion},
			migrate:  true,
			wantRole: domain.RoleCandidate,
		},
		{
			name:     "missing schema version",
			doc:      profileDocument{UserID: "u1", Role: "admin"},
			migrate:  true,
			wantRole: domain.RoleAdmin,
		},
		{
			name:     "current document",
			doc:      profileDocument{UserID: "u1", SchemaVersion: domain.ProfileSchemaVersion, Role: "recruiter"},
			migrate:  false,
			wantRole: domain.RoleRecruiter,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := needsMigration(&tc.doc); got != tc.migrate {
				t.Fatalf("needsMigration: expected %v, got %v", tc.migrate, got)
			}
			p := tc.doc.toDomain("u1")
			if p.UserID != "u1" {
				t.Fatalf("expected user id u1, got %q", p.UserID)
			}
			if p.Role != tc.wantRole {
				t.Fatalf("expected role %q, got %q", tc.wantRole, p.Role)
			}
		})
	}
}

func TestProfileDocument_ToDomain_NilLists(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CST", -6*3600))
	doc := profileDocument{LegacyID: "u1", FirstName: "Ana", CreatedAt: created}

	p := doc.toDomain("u1")
	if p.Skills == nil || p.Languages == nil {
		t.Fatalf("expected empty lists, got skills=%v languages=%v", p.Skills, p.Languages)
	}
	if p.FirstName != "Ana" {
		t.Fatalf("expected first name to carry over, got %q", p.FirstName)
	}
	if p.CreatedAt.Location() != time.UTC || !p.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at in UTC, got %v", p.CreatedAt)
	}
}

func TestFromDomainProfile_CurrentShape(t *testing.T) {
	doc := fromDomainProfile(&domain.Profile{UserID: "u1", Role: domain.RoleClient})

	if doc["user_id"] != "u1" {
		t.Fatalf("expected user_id u1, got %v", doc["user_id"])
	}
	if doc["schema_version"] != domain.ProfileSchemaVersion {
		t.Fatalf("expected schema_version %d, got %v", domain.ProfileSchemaVersion, doc["schema_version"])
	}
	if doc["role"] != "client" {
		t.Fatalf("expected role client, got %v", doc["role"])
	}
	if _, ok := doc["id"]; ok {
		t.Fatalf("legacy id must not be written")
	}
	if _, ok := doc["created_at"]; ok {
		t.Fatalf("created_at belongs to $setOnInsert")
	}
	if skills, ok := doc["skills"].([]string); !ok || skills == nil {
		t.Fatalf("expected non-nil skills, got %#v", doc["skills"])
	}
}
