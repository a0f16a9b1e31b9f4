// Package models contains data structures for the application's domain models.
package models

// AccountType distinguishes personal accounts from company accounts.
type AccountType string

const (
	// AccountTypeUser is a regular personal account.
	AccountTypeUser AccountType = "user"
	// AccountTypeCompany is a business account.
	AccountTypeCompany AccountType = "company"
)

// User represents an account row. Username is the primary key and is
// case-sensitive; it is denormalized into the post, friend, and group tables,
// so renames must cascade (see service.AccountService.UpdateProfile).
type User struct {
	Username           string      `json:"username"`
	PasswordHash       string      `json:"-"`
	AccountType        AccountType `json:"account_type"`
	ProfilePicture     string      `json:"profile_picture"`
	FavoriteCuisines   []string    `json:"favorite_cuisines"`
	DietaryPreferences []string    `json:"dietary_preferences"`
}
