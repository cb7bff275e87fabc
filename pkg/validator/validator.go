package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxContactName  = 40
	MaxContactPhone = 15
	MaxUsername     = 50
	MaxPassword     = 128
	MaxEmail        = 254
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Add keeps the first violation reported for a field.
func (v ValidationErrors) Add(field, message string) {
	if _, ok := v[field]; ok {
		return
	}
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmail reports whether s is a bare address with a dotted domain.
func IsEmail(s string) bool {
	if s == "" || len(s) > MaxEmail {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at < 1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

func ValidateRegister(username, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateUsername(strings.TrimSpace(username), errs)

	email = NormalizeEmail(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !IsEmail(email) {
		errs.Add("email", "Invalid email address")
	}

	validatePassword(password, errs)

	return errs
}

// ValidateLogin accepts either an email or a username as the identifier.
func ValidateLogin(identifier, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(identifier) == "" {
		errs.Add("email", "Email or username is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateUserUpdate(username, email, password *string) ValidationErrors {
	errs := make(ValidationErrors)

	if username == nil && email == nil && password == nil {
		errs.Add("body", "Please provide username, email or password to update")
		return errs
	}

	if username != nil {
		validateUsername(strings.TrimSpace(*username), errs)
	}
	if email != nil {
		if e := NormalizeEmail(*email); e == "" {
			errs.Add("email", "Email is required")
		} else if !IsEmail(e) {
			errs.Add("email", "Invalid email address")
		}
	}
	if password != nil {
		validatePassword(*password, errs)
	}

	return errs
}

func ValidateContact(name, email, phone string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	phone = strings.TrimSpace(phone)

	if name == "" || email == "" || phone == "" {
		errs.Add("body", "Please provide name, email and phone number")
	}

	if name != "" {
		validateContactName(name, errs)
	}
	if email != "" && !IsEmail(email) {
		errs.Add("email", "Invalid email address")
	}
	if phone != "" {
		validateContactPhone(phone, errs)
	}

	return errs
}

// ValidateContactUpdate checks only the fields present in the request.
func ValidateContactUpdate(name, email, phone *string) ValidationErrors {
	errs := make(ValidationErrors)

	if name == nil && email == nil && phone == nil {
		errs.Add("body", "Please provide name, email or phone number to update")
		return errs
	}

	if name != nil {
		if n := strings.TrimSpace(*name); n == "" {
			errs.Add("name", "Please add a contact name")
		} else {
			validateContactName(n, errs)
		}
	}
	if email != nil {
		if e := NormalizeEmail(*email); !IsEmail(e) {
			errs.Add("email", "Invalid email address")
		}
	}
	if phone != nil {
		if p := strings.TrimSpace(*phone); p == "" {
			errs.Add("phone", "Please add a contact phone number")
		} else {
			validateContactPhone(p, errs)
		}
	}

	return errs
}

func validateContactName(name string, errs ValidationErrors) {
	if utf8.RuneCountInString(name) > MaxContactName {
		errs.Add("name", "Contact name must not exceed 40 characters")
	}
}

func validateContactPhone(phone string, errs ValidationErrors) {
	if utf8.RuneCountInString(phone) > MaxContactPhone {
		errs.Add("phone", "Phone number must not exceed 15 characters")
	}
}

func validateUsername(username string, errs ValidationErrors) {
	switch {
	case username == "":
		errs.Add("username", "Username is required")
	case len(username) > MaxUsername:
		errs.Add("username", "Username is too long")
	case !usernameRegex.MatchString(username):
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	switch {
	case password == "":
		errs.Add("password", "Password is required")
	case len(password) > MaxPassword:
		errs.Add("password", "Password is too long")
	}
}
