// Package validation collects per-field input checks for the API surface.
// A Validator accumulates field→message pairs; only the first failure per
// field is kept.
package validation

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Validator struct {
	errors map[string]string
}

func New() *Validator {
	return &Validator{errors: make(map[string]string)}
}

// Check records msg under key when cond is false.
func (v *Validator) Check(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.errors[key]; !ok {
		v.errors[key] = msg
	}
}

func (v *Validator) CheckName(name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(len(name) >= 3, "name", "must be at least 3 characters")
}

func (v *Validator) CheckEmail(email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(emailRegexp.MatchString(email), "email", "must be a valid email address")
}

func (v *Validator) CheckPassword(password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 8, "password", "must be at least 8 characters")
	// bcrypt only reads the first 72 bytes.
	v.Check(len(password) <= 72, "password", "must be at most 72 characters")
}

func (v *Validator) CheckTitle(title string) {
	v.Check(title != "", "title", "must be provided")
}

func (v *Validator) CheckDescription(description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(len(description) <= 5000, "description", "must be at most 5000 characters")
}

func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

// Err returns a *common.ValidationError carrying the accumulated messages,
// or nil if everything checked out.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make(map[string]string, len(v.errors))
	for k, m := range v.errors {
		fields[k] = m
	}
	return &common.ValidationError{Fields: fields}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// case variations of the same email resolve to one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
