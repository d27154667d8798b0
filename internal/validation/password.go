package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	maxUsernameLength = 150
)

var (
	usernameRegex = regexp.MustCompile(`^[\pL\pN.@+_-]+$`)

	commonPasswords = map[string]struct{}{
		"password":   {},
		"password1":  {},
		"12345678":   {},
		"123456789":  {},
		"qwertyuiop": {},
		"iloveyou":   {},
		"sunshine":   {},
		"letmein1":   {},
	}
)

// ValidatePassword checks length, that the password is not entirely numeric,
// and that it is not a well-known password.
func ValidatePassword(password string) error {
	n := len([]rune(password))
	if n < minPasswordLength {
		return fmt.Errorf("This password is too short. It must contain at least %d characters.", minPasswordLength)
	}
	if n > maxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLength)
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("This password is entirely numeric.")
	}

	if _, common := commonPasswords[strings.ToLower(password)]; common {
		return fmt.Errorf("This password is too common.")
	}
	return nil
}

// ValidateUsername allows letters, digits and @ . + - _ up to 150 characters.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len([]rune(username)) > maxUsernameLength {
		return fmt.Errorf("Ensure this value has at most %d characters.", maxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	return nil
}
