package blob

import (
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

func TestUploaderStoresDataURL(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	u := NewUploader(store, "https://media.example.com/")

	payload := base64.StdEncoding.EncodeToString([]byte("fake-jpeg"))
	ref, err := u.Upload(ctx, "data:image/jpeg;base64,"+payload)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "https://media.example.com/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	key := strings.TrimPrefix(ref, "https://media.example.com/")
	info, rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "fake-jpeg", string(body))
	assert.Equal(t, "image/jpeg", info.ContentType)
}

func TestUploaderRejectsBadInput(t *testing.T) {
	u := NewUploader(NewMemory(), "https://media.example.com")
	cases := []string{
		"https://already.hosted/x.jpg",
		"data:image/png;base64",
		"data:image/png,rawbytes",
		"data:image/png;base64,!!!",
		"data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte("<p>")),
		"data:image/png;base64,",
	}
	for _, c := range cases {
		_, err := u.Upload(context.Background(), c)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), c)
	}
}
