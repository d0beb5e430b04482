package models

import "time"

// User is an account on the backend.
type User struct {
	// ID is the backend object id.
	ID string

	Username string
	Email    string

	// LastPostedAt is the time of the user's most recent post, nil when the
	// user has never posted.
	LastPostedAt *time.Time

	// SessionToken is present only for the signed-in user.
	SessionToken string
}

// Name returns the username, or a placeholder when the author was not
// resolved by the backend.
func (u *User) Name() string {
	if u == nil || u.Username == "" {
		return "unknown"
	}
	return u.Username
}
