package domain

import "time"

// User is the profile record this service keeps for an authenticated account.
// Identity (login, password) lives in the external identity provider; only the
// marketplace-facing fields are stored here.
//
// AvailableTopups is a pointer so a user that has never touched the boost flow
// can be told apart from one whose credit is spent (nil means uninitialized).
type User struct {
	ID                 string
	FullName           string
	Email              string
	ProfilePhoto       string
	City               string
	Neighborhood       string
	CurrentCommunityID string
	Communities        []string
	AvailableTopups    *int
	LastTopupReset     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProfileUpdate carries the editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName     *string
	ProfilePhoto *string
	City         *string
	Neighborhood *string
}
