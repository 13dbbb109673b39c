package domain

import (
	"encoding/base64"
	"strings"

	apperrors "taskdeck/internal/platform/errors"
)

type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Settings struct {
	Theme      string `json:"theme"`
	HomepageBg string `json:"homepageBg"`
	TodoBg     string `json:"todoBg"`
}

func DefaultSettings() Settings {
	return Settings{Theme: "light"}
}

type Photo struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Desc     string `json:"desc,omitempty"`
	ShowDesc bool   `json:"showDesc,omitempty"`
}

type Profile struct {
	Nickname  string  `json:"nickname"`
	Signature string  `json:"signature"`
	Age       string  `json:"age,omitempty"`
	Gender    string  `json:"gender,omitempty"`
	Birthday  string  `json:"birthday,omitempty"`
	Zodiac    string  `json:"zodiac,omitempty"`
	Location  string  `json:"location,omitempty"`
	School    string  `json:"school,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Email     string  `json:"email,omitempty"`
	Photos    []Photo `json:"photos,omitempty"`
}

// MaxPhotoBytes caps an uploaded image at 5MB of decoded data.
const MaxPhotoBytes = 5 * 1024 * 1024

// ValidatePhotoDataURL accepts only inline base64 image data URLs
// within the size cap.
func ValidatePhotoDataURL(url string) error {
	if !strings.HasPrefix(url, "data:image/") {
		return apperrors.ErrInvalidInput
	}
	marker := ";base64,"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return apperrors.ErrInvalidInput
	}
	payload := url[idx+len(marker):]
	if payload == "" {
		return apperrors.ErrInvalidInput
	}
	size := base64.StdEncoding.DecodedLen(len(payload))
	if size > MaxPhotoBytes {
		return apperrors.ErrInvalidInput
	}
	return nil
}
