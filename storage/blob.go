package storage

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Menwuyelet/Group-34/models"
	"github.com/google/uuid"
)

// Blob storage via Cloudinary signed uploads. Configuration comes from
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET and
// the optional CLOUDINARY_FOLDER. Content type and size are validated
// by the caller before anything reaches this file.

var ErrBlobStore = errors.New("blob store request failed")

// ProfileImagePublicID builds the stored path for a user's profile
// picture: profile/<user_id>/<uuid>.
func ProfileImagePublicID(userID uint) string {
	return fmt.Sprintf("profile/%d/%s", userID, uuid.NewString())
}

// ImagePublicID builds the stored path for an image:
// hotels/<hotel>/room/<id>/<uuid> or cities/<city>/attraction/<id>/<uuid>.
func ImagePublicID(owner models.ImageOwner, scopeName string, ownerID uint) string {
	scope := "cities"
	if owner.HotelScoped() {
		scope = "hotels"
	}
	name := strings.ToLower(strings.ReplaceAll(scopeName, " ", "_"))
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("%s/%s/%s/%d/%s", scope, name, strings.ToLower(string(owner)), ownerID, uuid.NewString())
}

func cloudinaryCreds() (cloudName, apiKey, apiSecret, folder string, err error) {
	cloudName = os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey = os.Getenv("CLOUDINARY_API_KEY")
	apiSecret = os.Getenv("CLOUDINARY_API_SECRET")
	folder = os.Getenv("CLOUDINARY_FOLDER")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		err = fmt.Errorf("%w: missing Cloudinary credentials", ErrBlobStore)
	}
	return
}

func signForm(form url.Values, publicID, apiSecret string) {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))
}

// UploadBase64Image puts a base64 image (raw or data URL) and returns
// the served URL.
func UploadBase64Image(base64ImageSrc, publicID string) (string, error) {
	if base64ImageSrc == "" {
		return "", fmt.Errorf("%w: empty image payload", ErrBlobStore)
	}
	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	cloudName, apiKey, apiSecret, folder, err := cloudinaryCreds()
	if err != nil {
		return "", err
	}

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", apiKey)
	if finalPublicID != "" {
		form.Add("public_id", finalPublicID)
	}
	signForm(form, finalPublicID, apiSecret)

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"
	res, err := http.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBlobStore, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBlobStore, err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upload status %d", ErrBlobStore, res.StatusCode)
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBlobStore, err)
	}
	if cloudRes.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", ErrBlobStore, cloudRes.Error.Message)
	}

	out := cloudRes.SecureURL
	if out == "" {
		out = cloudRes.URL
	}
	if out == "" {
		return "", fmt.Errorf("%w: no URL returned", ErrBlobStore)
	}
	return out, nil
}

// publicIDFromURL recovers the upload public id from a delivery URL:
// every path segment after the version marker (or after /upload/ when
// no version is present), with the file extension stripped. Public ids
// here are nested (hotels/<name>/<owner>/<id>/<uuid>), so the last
// segment alone is never enough.
func publicIDFromURL(imageURL string) string {
	const marker = "/upload/"
	i := strings.Index(imageURL, marker)
	if i == -1 {
		return ""
	}

	segments := strings.Split(imageURL[i+len(marker):], "/")
	if first := segments[0]; len(first) > 1 && first[0] == 'v' && digitsOnly(first[1:]) {
		segments = segments[1:]
	}
	if len(segments) == 0 || segments[len(segments)-1] == "" {
		return ""
	}

	last := segments[len(segments)-1]
	if dot := strings.LastIndex(last, "."); dot != -1 {
		segments[len(segments)-1] = last[:dot]
	}
	return strings.Join(segments, "/")
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// DeleteImage removes a previously uploaded image. Callers treat a
// failure as a tolerated side-channel problem, never as a reason to
// fail the owning entity's deletion.
func DeleteImage(imageURL string) bool {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return false
	}

	// The recovered id already carries any configured folder prefix;
	// it must not be prepended a second time.
	publicID := publicIDFromURL(imageURL)
	if publicID == "" {
		return false
	}

	cloudName, apiKey, apiSecret, _, err := cloudinaryCreds()
	if err != nil {
		return false
	}

	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", apiKey)
	signForm(form, publicID, apiSecret)

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/destroy"
	res, err := http.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode != http.StatusOK {
		return false
	}

	var deleteRes struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return false
	}
	return deleteRes.Result == "ok"
}
