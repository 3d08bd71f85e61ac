package domain

import "strings"

// JobFilter narrows a job list the way the listing page does.
type JobFilter struct {
	// Search is matched case-insensitively as a substring of title or description.
	Search string
	// Type, when set, must equal the job's type exactly.
	Type string
	// Extended also matches Search against company and location.
	Extended bool
}

// FilterJobs returns the jobs that pass f, preserving order. With an empty
// filter the input slice is returned as is.
func FilterJobs(jobs []Job, f JobFilter) []Job {
	if f.Search == "" && f.Type == "" {
		return jobs
	}

	term := strings.ToLower(f.Search)
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if term != "" && !matchesTerm(j, term, f.Extended) {
			continue
		}
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesTerm(j Job, term string, extended bool) bool {
	if strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Description), term) {
		return true
	}
	if !extended {
		return false
	}
	return strings.Contains(strings.ToLower(j.Company), term) ||
		strings.Contains(strings.ToLower(j.Location), term)
}
