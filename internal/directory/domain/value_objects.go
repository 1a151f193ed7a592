package domain

import (
	"net/mail"
	"net/url"
	"strings"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

type Email string

// NewEmail trims and validates an email address. Empty input is rejected.
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewValidationError("email is required")
	}
	if len(trimmed) > 254 {
		return "", apperrors.NewValidationError("email too long")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", apperrors.NewValidationErrorf("invalid email: %s", trimmed)
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

// Key is the case-insensitive identity used for uniqueness checks.
func (e Email) Key() string {
	return EmailKey(string(e))
}

// EmailKey lower-cases and trims an email for comparison.
func EmailKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

type Rating int

func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return 0, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	return Rating(value), nil
}

func (r Rating) Int() int {
	return int(r)
}

type URL string

func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", apperrors.NewValidationErrorf("invalid URL: %s", trimmed)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

// IsLocalImageData reports whether value holds an inline data URL that
// still needs to go through the media uploader.
func IsLocalImageData(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), "data:")
}

// CompactGallery drops empty slots while keeping order.
func CompactGallery(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		result = append(result, v)
	}
	return result
}

func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewValidationErrorf("%s is required", field)
	}
	return trimmed, nil
}

// RequireText trims value and fails with a validation error when it is empty.
func RequireText(field, value string) (string, error) {
	return requireText(field, value)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
