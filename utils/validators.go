package utils

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

const MaxPictureSize = 5 * 1024 * 1024 // 5MB

var phoneRegex = regexp.MustCompile(`^\+?\d{7,15}$`)

var (
	passwordLetter = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit  = regexp.MustCompile(`\d`)
	passwordSymbol = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

var allowedPictureTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.New("Invalid phone number format.")
	}
	return nil
}

// ValidatePassword enforces the baseline strength rule: at least 8
// characters with one letter, one number and one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long.")
	}
	if !passwordLetter.MatchString(password) {
		return errors.New("Password must contain at least one letter.")
	}
	if !passwordDigit.MatchString(password) {
		return errors.New("Password must contain at least one number.")
	}
	if !passwordSymbol.MatchString(password) {
		return errors.New("Password must contain at least one special character.")
	}
	return nil
}

// ValidatePicture checks content type and size limits. It runs before
// any byte reaches the blob store.
func ValidatePicture(contentType string, size int64) error {
	if !allowedPictureTypes[contentType] {
		return errors.New("Only JPEG, PNG, and GIF images are allowed.")
	}
	if size > MaxPictureSize {
		return errors.New("Image size should not exceed 5MB.")
	}
	return nil
}

// ParsePictureDataURL extracts the content type and decoded size from
// a "data:image/png;base64,..." payload. Raw base64 without a data URL
// prefix is rejected because the content type cannot be trusted.
func ParsePictureDataURL(data string) (contentType string, size int64, err error) {
	if !strings.HasPrefix(data, "data:") {
		return "", 0, errors.New("Image must be a base64 data URL.")
	}
	rest := data[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep == -1 {
		return "", 0, errors.New("Image must be base64 encoded.")
	}
	contentType = rest[:sep]
	payload := rest[sep+len(";base64,"):]

	decoded, decErr := base64.StdEncoding.DecodeString(payload)
	if decErr != nil {
		return "", 0, errors.New("Image payload is not valid base64.")
	}
	return contentType, int64(len(decoded)), nil
}
