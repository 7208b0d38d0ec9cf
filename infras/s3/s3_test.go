package s3_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	"afristay/infras/s3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

type recorded struct {
	method      string
	path        string
	contentType string
	body        []byte
}

func newStore(t *testing.T) (s3.S3, func() []recorded) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recorded
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		requests = append(requests, recorded{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: body})
		mu.Unlock()

		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.External.S3.APIEndpoint = server.URL
	cfg.External.S3.PublicDomain = "https://cdn.afristay.rw/"
	cfg.External.S3.AccessKeyID = "key"
	cfg.External.S3.SecretAccessKey = "secret"
	cfg.External.S3.BucketName = "fallback"

	return s3.New(cfg, mocks.NewOtel()), func() []recorded {
		mu.Lock()
		defer mu.Unlock()

		return append([]recorded(nil), requests...)
	}
}

func TestUploadFile(t *testing.T) {
	store, requests := newStore(t)

	content := []byte("\x89PNG fake image")
	header := &multipart.FileHeader{
		Filename: "room.png",
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
		Size:     int64(len(content)),
	}

	url, err := store.UploadFile(context.Background(), "listing-images", "listing-1", memFile{bytes.NewReader(content)}, header, "a.png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.afristay.rw/listing-images/listing-1/a.png", url)

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/listing-images/listing-1/a.png", got[0].path)
	assert.Equal(t, "image/png", got[0].contentType)
	assert.Contains(t, string(got[0].body), "fake image")
}

func TestDeleteFile_DefaultBucket(t *testing.T) {
	store, requests := newStore(t)

	require.NoError(t, store.DeleteFile(context.Background(), "", "events", "jazz.png"))

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodDelete, got[0].method)
	assert.Equal(t, "/fallback/events/jazz.png", got[0].path)
}

func TestGetObjectNameFromURL(t *testing.T) {
	store, _ := newStore(t)

	assert.Equal(t, "listing-1/a.png", store.GetObjectNameFromURL("listing-images", "https://cdn.afristay.rw/listing-images/listing-1/a.png"))
	assert.Empty(t, store.GetObjectNameFromURL("listing-images", "https://cdn.afristay.rw/event-images/a.png"))
	assert.Empty(t, store.GetObjectNameFromURL("listing-images", "https://elsewhere.example/listing-images/a.png"))
}
