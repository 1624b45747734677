package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for request fields.
const (
	maxEmailLen    = 254
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 8
	maxPasswordLen = 128
	maxTitleLen    = 300
	maxContentLen  = 100_000
	maxCommentLen  = 10_000
)

// validateSignup checks signup inputs and returns the first error found.
func validateSignup(email, username, password string) string {
	if msg := validateEmail(email); msg != "" {
		return msg
	}
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < minUsernameLen {
		return "Username must be at least 3 characters."
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "Username is too long (max 20 characters)."
	}
	if len(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if len(password) > maxPasswordLen {
		return "Password is too long (max 128 characters)."
	}
	return ""
}

// validateSignin checks sign-in inputs.
func validateSignin(email, password string) string {
	if msg := validateEmail(email); msg != "" {
		return msg
	}
	if password == "" {
		return "Password is required."
	}
	return ""
}

// validateEmail checks that an email address is present and parseable.
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if len(email) > maxEmailLen {
		return "Email is too long."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Email is not a valid address."
	}
	return ""
}

// validatePostCreate checks post creation inputs.
func validatePostCreate(title, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validatePostUpdate checks the optional update fields: absent fields are
// fine, present fields must not be empty, and a provided category list
// must not be empty.
func validatePostUpdate(title, content *string, categories []string) string {
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return "Empty title is not allowed."
		}
		if utf8.RuneCountInString(*title) > maxTitleLen {
			return "Title is too long (max 300 characters)."
		}
	}
	if content != nil {
		if strings.TrimSpace(*content) == "" {
			return "Empty content is not allowed."
		}
		if utf8.RuneCountInString(*content) > maxContentLen {
			return "Content is too long (max 100,000 characters)."
		}
	}
	if categories != nil && len(categories) == 0 {
		return "Categories can't be empty if provided."
	}
	return ""
}

// validateComment checks comment creation inputs.
func validateComment(content string) string {
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "Content is too long (max 10,000 characters)."
	}
	return ""
}
