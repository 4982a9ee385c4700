package domain

// Session is the authenticated identity a CRM call is made on behalf of.
// It is passed explicitly to every client call.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Valid reports whether the session identifies a user.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != ""
}
