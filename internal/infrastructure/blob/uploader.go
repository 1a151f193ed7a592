package blob

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

// MaxUploadBytes caps a single decoded upload.
const MaxUploadBytes = 10 << 20

var extensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Uploader decodes data URLs into a Store and returns the public URL of
// the stored object.
type Uploader struct {
	store   Store
	baseURL string
	prefix  string
	now     func() time.Time
}

func NewUploader(store Store, baseURL string) *Uploader {
	return &Uploader{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  "uploads",
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores a base64 data URL such as "data:image/png;base64,...".
func (u *Uploader) Upload(ctx context.Context, dataURL string) (string, error) {
	contentType, body, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	ext, ok := extensions[contentType]
	if !ok {
		return "", apperrors.NewValidationErrorf("unsupported media type: %s", contentType)
	}
	key := path.Join(u.prefix, u.now().Format("2006/01"), uuid.NewString()+ext)
	if _, err := u.store.Put(ctx, key, bytes.NewReader(body), PutOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return u.baseURL + "/" + key, nil
}

func decodeDataURL(value string) (string, []byte, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "data:") {
		return "", nil, apperrors.NewValidationError("upload must be a data URL")
	}
	header, payload, found := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !found {
		return "", nil, apperrors.NewValidationError("malformed data URL")
	}
	params := strings.Split(header, ";")
	contentType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if !isBase64 {
		return "", nil, apperrors.NewValidationError("data URL must be base64 encoded")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxUploadBytes {
		return "", nil, apperrors.NewValidationError("upload too large")
	}
	body, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, apperrors.NewValidationErrorf("invalid base64 payload: %v", err)
	}
	if len(body) == 0 {
		return "", nil, apperrors.NewValidationError("upload is empty")
	}
	return contentType, body, nil
}
