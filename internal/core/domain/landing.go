package domain

// Landing names the page a client should show next.
type Landing string

const (
	LandingLogin   Landing = "login"
	LandingProfile Landing = "profile"
	LandingJobs    Landing = "jobs"
)

// ResolveLanding is the navigation guard: no session goes to login, an
// incomplete profile goes to the profile editor, anything else to the jobs page.
func ResolveLanding(s *Session, profileComplete bool) Landing {
	if s == nil {
		return LandingLogin
	}
	if !profileComplete {
		return LandingProfile
	}
	return LandingJobs
}
