package models

// Session is the resolved identity of the caller for one request. It is
// populated by the auth middleware and passed explicitly into every
// operation that needs the current user; core logic never reads global
// auth state.
type Session struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Roles []Role `json:"roles"`
}

func (s *Session) HasRole(role Role) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
