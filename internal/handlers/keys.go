package handlers

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const userKeyPrefix = "users/"

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/avif": ".avif",
	"image/heic": ".heic",
}

// ownerPrefix is the key prefix every object of subject lives under.
func ownerPrefix(subject string) string {
	return userKeyPrefix + subject + "/"
}

// ownsKey reports whether key addresses an object inside subject's prefix.
// Keys with "." or ".." segments are refused; dots inside a segment are not.
func ownsKey(subject, key string) bool {
	prefix := ownerPrefix(subject)
	if len(key) <= len(prefix) || !strings.HasPrefix(key, prefix) {
		return false
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "." || segment == ".." {
			return false
		}
	}
	return true
}

// mediaType lowercases contentType and drops any parameters.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// newImageKey derives a fresh key users/{subject}/images/{uuid}{ext}. The
// extension comes from the content type, then from fileName.
func newImageKey(subject, fileName, contentType string) (string, error) {
	ext, ok := extensionsByType[contentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(fileName))
		if !isSafeExtension(ext) {
			ext = ""
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return ownerPrefix(subject) + "images/" + id.String() + ext, nil
}

func isSafeExtension(ext string) bool {
	if len(ext) < 2 || len(ext) > 10 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
