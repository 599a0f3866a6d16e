// Package validation holds the pure input checks used by the resolvers.
// Violations accumulate into a list instead of short-circuiting, so a
// single response can report every bad field at once.
package validation

import (
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"blogapi/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	hasDigit = regexp.MustCompile(`\d`)
)

// NormalizeEmail trims and lowercases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// User checks registration input and returns every violation found.
func User(email, password, name string) []*apperr.Error {
	var errs []*apperr.Error
	if !IsEmail(email) {
		errs = append(errs, apperr.New("Invalid Email", http.StatusUnprocessableEntity))
	}
	if utf8.RuneCountInString(password) < 5 || !hasDigit.MatchString(password) {
		errs = append(errs, apperr.New("Password must be a 5 character at least and contains numbers", http.StatusUnprocessableEntity))
	}
	if strings.TrimSpace(name) == "" {
		errs = append(errs, apperr.New("Name is required", http.StatusUnprocessableEntity))
	}
	return errs
}

// Post checks title and content for post creation and update.
func Post(title, content string) []*apperr.Error {
	var errs []*apperr.Error
	if strings.TrimSpace(title) == "" || utf8.RuneCountInString(title) < 5 {
		errs = append(errs, apperr.New("Title is required and must be more than 4 character", http.StatusUnprocessableEntity))
	}
	if strings.TrimSpace(content) == "" || utf8.RuneCountInString(content) < 5 {
		errs = append(errs, apperr.New("Content is required and must be more than 4 character", http.StatusUnprocessableEntity))
	}
	return errs
}
