package models

import "time"

// Caller is the identity recovered from a verified token. It lives for one request.
type Caller struct {
	UID       string
	Email     string
	Name      string
	Source    string    // verifier that accepted the token: firebase, oidc, dev
	ExpiresAt time.Time // zero when the token carries no expiry
}

// Profile is the caller's account as reported by /users/me.
// The timestamps are only maintained by the local profile directory.
type Profile struct {
	UID         string    `bson:"uid" json:"uid"`
	Email       string    `bson:"email" json:"email"`
	DisplayName *string   `bson:"displayName" json:"display_name"` // null when the account has no name
	CreatedAt   time.Time `bson:"createdAt" json:"-"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"-"`
}

// NewProfile builds a profile; an empty display name is stored as absent.
func NewProfile(uid, email, displayName string) *Profile {
	p := &Profile{UID: uid, Email: email}
	if displayName != "" {
		p.DisplayName = &displayName
	}
	return p
}
