package credential

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the sign-up form accepts.
const MinPasswordLength = 8

// passwordSpecials are the characters that satisfy the special-character rule.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// PolicyRule names the password rule that failed.
type PolicyRule string

const (
	RuleLength  PolicyRule = "length"
	RuleUpper   PolicyRule = "uppercase"
	RuleLower   PolicyRule = "lowercase"
	RuleDigit   PolicyRule = "digit"
	RuleSpecial PolicyRule = "special"
)

// PolicyError reports the first password rule that failed.
type PolicyError struct {
	Rule    PolicyRule
	Message string
}

func (e *PolicyError) Error() string {
	return e.Message
}

// ValidatePassword checks a sign-up password. Rules are checked in order
// (length, upper, lower, digit, special) and the first failure is returned.
//
// Registration itself does not call this; it is applied at the input
// boundary before Register.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &PolicyError{Rule: RuleLength, Message: fmt.Sprintf("password must be at least %d characters long", MinPasswordLength)}
	}
	if !strings.ContainsFunc(password, isASCIIUpper) {
		return &PolicyError{Rule: RuleUpper, Message: "password must contain at least one uppercase letter"}
	}
	if !strings.ContainsFunc(password, isASCIILower) {
		return &PolicyError{Rule: RuleLower, Message: "password must contain at least one lowercase letter"}
	}
	if !strings.ContainsFunc(password, isASCIIDigit) {
		return &PolicyError{Rule: RuleDigit, Message: "password must contain at least one number"}
	}
	if !strings.ContainsAny(password, passwordSpecials) {
		return &PolicyError{Rule: RuleSpecial, Message: "password must contain at least one special character"}
	}
	return nil
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
