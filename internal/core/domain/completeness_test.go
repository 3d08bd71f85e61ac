package domain

import (
	"reflect"
	"testing"
)

func fullProfile() *Profile {
	return &Profile{
		UserID:    "u1",
		FirstName: "Ana",
		LastName:  "Ruiz",
		Email:     "ana@example.com",
		Role:      RoleCandidate,
		Country:   "ES",
		City:      "Madrid",
		Skills:    []string{"go"},
		Languages: []string{"es", "en"},
	}
}

func TestMissing_NilProfileMissesEverything(t *testing.T) {
	req := RequiredFields{"first_name", "skills", "email"}

	got := req.Missing(nil)
	if !reflect.DeepEqual(got, []string(req)) {
		t.Fatalf("expected %v, got %v", req, got)
	}
	if req.IsComplete(nil) {
		t.Fatal("nil profile must not be complete")
	}
}

func TestMissing_OnlyNamesSet(t *testing.T) {
	req := RequiredFields{"first_name", "last_name", "email"}
	p := &Profile{FirstName: "Ana", LastName: "Ruiz"}

	got := req.Missing(p)
	if !reflect.DeepEqual(got, []string{"email"}) {
		t.Fatalf("expected [email], got %v", got)
	}
	if req.IsComplete(p) {
		t.Fatal("expected incomplete profile")
	}
}

func TestMissing_CompleteIffEmpty(t *testing.T) {
	req := DefaultRequiredFields
	cases := []*Profile{
		nil,
		{},
		fullProfile(),
		{FirstName: "a", LastName: "b", Email: "c", Role: RoleAdmin, Country: "d"},
	}
	for i, p := range cases {
		missing := req.Missing(p)
		if (len(missing) == 0) != req.IsComplete(p) {
			t.Errorf("case %d: missing=%v but IsComplete=%v", i, missing, req.IsComplete(p))
		}
	}
	if !req.IsComplete(fullProfile()) {
		t.Error("full profile should be complete")
	}
}

func TestMissing_ArrayFields(t *testing.T) {
	req := RequiredFields{"skills", "languages"}

	p := fullProfile()
	p.Skills = nil
	p.Languages = []string{}
	got := req.Missing(p)
	if !reflect.DeepEqual(got, []string{"skills", "languages"}) {
		t.Fatalf("expected both array fields missing, got %v", got)
	}

	p.Skills = []string{""}
	p.Languages = []string{" ", ""}
	if got := req.Missing(p); len(got) != 0 {
		t.Fatalf("non-empty lists must never be missing, got %v", got)
	}
}

func TestMissing_PreservesDeclaredOrder(t *testing.T) {
	req := RequiredFields{"city", "bio", "first_name", "phone"}
	p := &Profile{FirstName: "Ana"}

	got := req.Missing(p)
	want := []string{"city", "bio", "phone"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMissing_UnknownFieldCountsAsAbsent(t *testing.T) {
	req := RequiredFields{"first_name", "favourite_colour"}
	got := req.Missing(fullProfile())
	if !reflect.DeepEqual(got, []string{"favourite_colour"}) {
		t.Fatalf("expected unknown field reported, got %v", got)
	}
}

func TestRequiredFields_Validate(t *testing.T) {
	if err := DefaultRequiredFields.Validate(); err != nil {
		t.Fatalf("default set should be valid: %v", err)
	}
	if err := (RequiredFields{"email", "shoe_size"}).Validate(); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestCompletion(t *testing.T) {
	req := RequiredFields{"first_name", "last_name", "email", "city"}
	if got := req.Completion(nil); got != 0 {
		t.Errorf("nil profile: expected 0, got %d", got)
	}
	if got := req.Completion(&Profile{FirstName: "a", Email: "b"}); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
	if got := (RequiredFields{}).Completion(nil); got != 100 {
		t.Errorf("empty set: expected 100, got %d", got)
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]Role{
		"user":      RoleCandidate,
		"cliente":   RoleClient,
		"admin":     RoleAdmin,
		"recruiter": RoleRecruiter,
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
	if NormalizeRole("wizard").Valid() {
		t.Error("unknown role should not be valid")
	}
}

func TestResolveLanding(t *testing.T) {
	s := &Session{UserID: "u1"}
	if got := ResolveLanding(nil, true); got != LandingLogin {
		t.Errorf("no session: got %q", got)
	}
	if got := ResolveLanding(s, false); got != LandingProfile {
		t.Errorf("incomplete: got %q", got)
	}
	if got := ResolveLanding(s, true); got != LandingJobs {
		t.Errorf("complete: got %q", got)
	}
}
