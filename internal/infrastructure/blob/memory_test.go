package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPutGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	info, err := m.Put(ctx, "a/b.png", bytes.NewReader([]byte("png")), PutOptions{ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)

	_, err = m.Put(ctx, "a/b.png", bytes.NewReader([]byte("again")), PutOptions{})
	assert.Error(t, err)

	got, rc, err := m.Get(ctx, "a/b.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "png", string(data))
	assert.Equal(t, "image/png", got.ContentType)

	ok, err := m.Delete(ctx, "a/b.png")
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = m.Get(ctx, "a/b.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOpenSelectsDriver(t *testing.T) {
	store, err := Open(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, store.Driver())

	_, err = Open(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = Open(context.Background(), Config{Driver: "s3"})
	assert.Error(t, err, "bucket is required")
}
