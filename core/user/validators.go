package user

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	roleTag  = "role"
	roleText = "unknown role"

	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to your email or name"
)

func roleValidation(fl validator.FieldLevel) bool {
	return IsValidRole(fl.Field().String())
}

func pwdMinLenValidation(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) >= pwdMinLen
}

func pwdNoSpaceValidation(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func pwdNotAllNumValidation(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// pwdAttrSimValidation rejects passwords that are too similar to the
// sibling Email, FirstName or LastName fields.
func pwdAttrSimValidation(fl validator.FieldLevel) bool {
	pwd := strings.ToLower(fl.Field().String())
	parent := fl.Parent()

	for _, fldName := range []string{"Email", "FirstName", "LastName"} {
		fld := parent.FieldByName(fldName)
		if !fld.IsValid() {
			continue
		}
		attr := strings.ToLower(fld.String())
		if attr == "" {
			continue
		}
		matcher := difflib.NewMatcher(splitChars(pwd), splitChars(attr))
		if matcher.Ratio() > pwdMaxSim {
			return false
		}
	}
	return true
}

func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}
