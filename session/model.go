package session

// Session defines a public type used by goGuard APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	SubjectID   string   `json:"userId"`
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Email       string   `json:"email"`
	Avatar      string   `json:"avatar"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Token       string   `json:"token"`
	TokenType   string   `json:"tokenType"`
}

// Clone returns a deep copy of the session. The store clones on write so a
// published Session is never aliased by caller-held slices.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Roles = append([]string(nil), s.Roles...)
	clone.Permissions = append([]string(nil), s.Permissions...)
	return &clone
}

// WithToken returns a copy of the session with only the access token
// replaced. All identity fields are preserved.
func (s *Session) WithToken(token string) *Session {
	clone := s.Clone()
	if clone == nil {
		return nil
	}
	clone.Token = token
	return clone
}

// HasRole reports whether the session carries the given role name.
func (s *Session) HasRole(role string) bool {
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

// HasPermission reports whether the session carries the given permission
// code. The wildcard code "*" grants every permission.
func (s *Session) HasPermission(permission string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == "*" || p == permission {
			return true
		}
	}
	return false
}
