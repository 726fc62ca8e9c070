package session

import "github.com/dmitrijs2005/prepadmin/internal/client/models"

// Status is the session tri-state.
type Status int

const (
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is one snapshot of the session. Identity is set only when Status is
// StatusAuthenticated.
type State struct {
	Status   Status
	Identity *models.User
}

func Loading() State         { return State{Status: StatusLoading} }
func Unauthenticated() State { return State{Status: StatusUnauthenticated} }

func Authenticated(u *models.User) State {
	return State{Status: StatusAuthenticated, Identity: u}
}

// IsAdmin reports whether the state carries an admin identity.
func (s State) IsAdmin() bool {
	return s.Status == StatusAuthenticated && s.Identity != nil && s.Identity.IsAdmin
}
