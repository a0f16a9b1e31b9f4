// Package validation contains input validation helpers shared by the
// account and handler layers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// usernameRegex intentionally excludes commas and whitespace: usernames are
// embedded in comma-joined member and friend lists on disk.
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{2,63}$`)

// ValidateUsername validates username format.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-64 characters: letters, digits, '.', '_' or '-', starting with a letter or digit")
	}
	if strings.HasSuffix(username, "_") || strings.HasSuffix(username, "-") {
		return fmt.Errorf("username cannot end with '_' or '-'")
	}
	return nil
}

// ValidatePassword enforces a minimum password strength.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must be at most 128 characters")
	}
	return nil
}

// ValidateAccountType checks the account type is one of the known values.
func ValidateAccountType(accountType string) error {
	switch accountType {
	case "user", "company":
		return nil
	}
	return fmt.Errorf("account_type must be %q or %q", "user", "company")
}

// ValidateCuisineList rejects list entries that would corrupt the
// comma-joined on-disk encoding.
func ValidateCuisineList(cuisines []string) error {
	for _, c := range cuisines {
		if strings.Contains(c, ",") {
			return fmt.Errorf("cuisine name %q must not contain a comma", c)
		}
	}
	return nil
}
