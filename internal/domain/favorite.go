package domain

import "time"

// Favorite is a denormalized snapshot of an ad saved by a user. Uniqueness per
// (user, ad) pair is enforced by the repository, not the storage schema.
type Favorite struct {
	ID        string
	UserID    string
	AdID      string
	AdTitle   string
	AdImage   string
	AdPrice   float64
	CreatedAt time.Time
}
