package authclient

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

var (
	lowercaseRe  = regexp.MustCompile(`[a-z]`)
	uppercaseRe  = regexp.MustCompile(`[A-Z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
	specialRe    = regexp.MustCompile(`[@$!%*?&\-_.]`)
	whitespaceRe = regexp.MustCompile(`\s`)
)

// PasswordRuleResults reports each client-side password rule
// individually so callers can render per-rule feedback.
type PasswordRuleResults struct {
	Length       bool `json:"length"`
	Lowercase    bool `json:"lowercase"`
	Uppercase    bool `json:"uppercase"`
	Digit        bool `json:"digit"`
	Special      bool `json:"special"`
	NoWhitespace bool `json:"no_whitespace"`
	NoUsername   bool `json:"no_username"`
}

// AllValid reports whether every rule passed.
func (r PasswordRuleResults) AllValid() bool {
	return r.Length && r.Lowercase && r.Uppercase && r.Digit &&
		r.Special && r.NoWhitespace && r.NoUsername
}

// ValidatePasswordRules runs the client-side password checks. These are
// a UX convenience only; the backend re-validates on registration.
func ValidatePasswordRules(password, usernameOrEmail string) PasswordRuleResults {
	results := PasswordRuleResults{
		Length:       len(password) >= 8,
		Lowercase:    lowercaseRe.MatchString(password),
		Uppercase:    uppercaseRe.MatchString(password),
		Digit:        digitRe.MatchString(password),
		Special:      specialRe.MatchString(password),
		NoWhitespace: !whitespaceRe.MatchString(password),
		NoUsername:   true,
	}

	if usernameOrEmail != "" {
		results.NoUsername = !strings.Contains(
			strings.ToLower(password),
			strings.ToLower(usernameOrEmail),
		)
	}

	return results
}

// PasswordStrengthScore scores a password 0..6 for meter display.
func PasswordStrengthScore(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}
	if lowercaseRe.MatchString(password) {
		score++
	}
	if uppercaseRe.MatchString(password) {
		score++
	}
	if digitRe.MatchString(password) {
		score++
	}
	if specialRe.MatchString(password) {
		score++
	}
	if score > 6 {
		score = 6
	}
	return score
}

// ValidatePasswordPolicy adapts the rule set into an ozzo rule so
// request payloads can embed it in ValidateStruct chains.
func ValidatePasswordPolicy(usernameOrEmail string) validation.RuleFunc {
	return func(value any) error {
		password, _ := value.(string)
		results := ValidatePasswordRules(password, usernameOrEmail)
		if results.AllValid() {
			return nil
		}
		return errors.New("password does not meet all requirements", errors.CategoryValidation).
			WithMetadata(map[string]any{"rules": results})
	}
}
