// utils/validation.go
package utils

import "regexp"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks a basic email shape
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}
