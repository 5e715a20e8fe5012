package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	for _, ok := range []string{"+251911234567", "0911234567", "1234567", "123456789012345"} {
		assert.NoError(t, ValidatePhone(ok), ok)
	}
	for _, bad := range []string{"", "123456", "1234567890123456", "+2519-112345", "phone", "++1234567"} {
		assert.Error(t, ValidatePhone(bad), bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("s3cure!pass"))

	for _, bad := range []string{
		"sh0r!t",       // too short
		"12345678!",    // no letter
		"password!",    // no digit
		"password123",  // no symbol
	} {
		assert.Error(t, ValidatePassword(bad), bad)
	}
}

func TestValidatePicture(t *testing.T) {
	assert.NoError(t, ValidatePicture("image/jpeg", 1024))
	assert.NoError(t, ValidatePicture("image/png", MaxPictureSize))
	assert.NoError(t, ValidatePicture("image/gif", 1))

	assert.Error(t, ValidatePicture("image/webp", 1024))
	assert.Error(t, ValidatePicture("application/pdf", 1024))
	assert.Error(t, ValidatePicture("image/png", MaxPictureSize+1))
}

func TestParsePictureDataURL(t *testing.T) {
	raw := []byte("fake image bytes")
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	contentType, size, err := ParsePictureDataURL(data)
	assert.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, int64(len(raw)), size)

	_, _, err = ParsePictureDataURL(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err, "raw base64 without data URL prefix")

	_, _, err = ParsePictureDataURL("data:image/png;base64,not-base64!!!")
	assert.Error(t, err)

	_, _, err = ParsePictureDataURL("data:image/png," + strings.Repeat("a", 10))
	assert.Error(t, err, "missing base64 marker")
}
