package domain

// Community is the partition key that scopes which ads and users see each
// other (a university, condo or neighborhood).
type Community struct {
	ID       string
	Name     string
	City     string
	IsActive bool
}
