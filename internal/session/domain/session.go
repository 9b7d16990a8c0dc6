package domain

import "errors"

// UserSession is what the authentication collaborator hands over on login.
type UserSession struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var ErrInvalidSession = errors.New("session requires an id")

func (s UserSession) Validate() error {
	if s.ID == "" {
		return ErrInvalidSession
	}
	return nil
}
