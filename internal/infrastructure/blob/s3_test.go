package blob

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the handful of path-style object calls the store makes.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	empty := io.NopCloser(bytes.NewReader(nil))
	switch req.Method {
	case http.MethodHead:
		if _, ok := f.objects[key]; ok {
			return &http.Response{StatusCode: 200, Body: empty, Header: http.Header{}}, nil
		}
		return &http.Response{StatusCode: 404, Body: empty, Header: http.Header{}}, nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[key] = body
		f.types[key] = req.Header.Get("Content-Type")
		return &http.Response{StatusCode: 200, Body: empty, Header: http.Header{"Etag": {`"etag"`}}}, nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			xml := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`
			return &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader(xml)), Header: http.Header{"Content-Type": {"application/xml"}}}, nil
		}
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(body)), Header: http.Header{
			"Content-Type":   {f.types[key]},
			"Content-Length": {strconv.Itoa(len(body))},
		}}, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return &http.Response{StatusCode: 204, Body: empty, Header: http.Header{}}, nil
	}
	return &http.Response{StatusCode: 501, Body: empty, Header: http.Header{}}, nil
}

func newFakeS3Store(t *testing.T) *S3 {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	store, err := NewS3(context.Background(), S3Config{
		Bucket:          "media",
		Region:          "us-east-1",
		Endpoint:        "https://s3.test.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	require.NoError(t, err)
	return store
}

func TestS3PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeS3Store(t)
	assert.Equal(t, DriverS3, store.Driver())

	_, err := store.Put(ctx, "uploads/a.png", bytes.NewReader([]byte("hello")), PutOptions{ContentType: "image/png"})
	require.NoError(t, err)

	_, err = store.Put(ctx, "uploads/a.png", bytes.NewReader([]byte("again")), PutOptions{})
	assert.Error(t, err)

	info, rc, err := store.Get(ctx, "uploads/a.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "image/png", info.ContentType)

	ok, err := store.Delete(ctx, "uploads/a.png")
	require.NoError(t, err)
	assert.True(t, ok)
}
