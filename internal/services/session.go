package services

import "github.com/google/uuid"

// Session identifies the caller of a service operation. It is built once at
// the transport boundary from the session cookie.
type Session struct {
	UserID string
}

// NewSession returns a Session for userID, canonicalised when it is a UUID.
func NewSession(userID string) Session {
	if id, ok := CanonicalID(userID); ok {
		userID = id
	}
	return Session{UserID: userID}
}

// CanonicalID accepts a UUID in the hyphenated 36-character form, in any
// case, and returns it lowercased. Braced, URN and bare-hex spellings are
// rejected so that one identity has exactly one stored form.
func CanonicalID(s string) (string, bool) {
	if len(s) != 36 {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// authorize fails with ErrUnauthorized unless the session carries a
// canonical UUID.
func (s Session) authorize() error {
	if id, ok := CanonicalID(s.UserID); !ok || id != s.UserID {
		return ErrUnauthorized
	}
	return nil
}
