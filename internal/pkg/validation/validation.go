package validation

import (
	"regexp"
	"unicode"
)

// Username: 3-32 chars, letters, digits, underscore.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)

// Symbol: uppercase ticker, digits, dot or hyphen (e.g. BRK.B), max 12 chars.
// Input is uppercased before this check.
var symbolRe = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,11}$`)

func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// IsValidPassword enforces:
// - at least 8 characters
// - contains at least one letter
// - contains at least one number
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func IsValidSymbol(symbol string) bool {
	return symbolRe.MatchString(symbol)
}
