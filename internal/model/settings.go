package model

// Settings holds the user-facing application settings carried in a
// backup snapshot alongside the books.
type Settings struct {
	Language    string
	Theme       string
	Currency    string
	CompanyName string
}
