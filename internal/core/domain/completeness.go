package domain

import "fmt"

// DefaultRequiredFields is the required-field set used when none is configured.
var DefaultRequiredFields = RequiredFields{"first_name", "last_name", "email", "role", "country", "city"}

// RequiredFields is the ordered list of profile attributes that must be
// non-empty for a profile to count as complete.
type RequiredFields []string

// Validate rejects names that are not profile attributes.
func (r RequiredFields) Validate() error {
	var probe Profile
	for _, name := range r {
		if _, ok := probe.field(name); !ok {
			return fmt.Errorf("unknown profile field %q", name)
		}
	}
	return nil
}

// Missing returns the required fields whose value is absent, an empty string or
// an empty list, in declared order. A nil profile is missing every field.
func (r RequiredFields) Missing(p *Profile) []string {
	missing := make([]string, 0, len(r))
	for _, name := range r {
		if p == nil || isEmptyValue(p, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsComplete reports whether no required field is missing.
func (r RequiredFields) IsComplete(p *Profile) bool {
	return len(r.Missing(p)) == 0
}

// Completion returns the share of required fields present, as a whole percentage.
func (r RequiredFields) Completion(p *Profile) int {
	if len(r) == 0 {
		return 100
	}
	present := len(r) - len(r.Missing(p))
	return present * 100 / len(r)
}

func isEmptyValue(p *Profile, name string) bool {
	v, ok := p.field(name)
	if !ok {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	}
	return v == nil
}
