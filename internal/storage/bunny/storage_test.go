package bunny

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wedsite/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(endpoint string) *Storage {
	return New(config.StorageConfig{
		Zone:     "wedsite-zone",
		APIKey:   "test-key",
		Endpoint: endpoint,
		CDNURL:   "https://cdn.example.com",
	})
}

func TestStorage_Upload(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("AccessKey")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := newTestStorage(srv.URL)
	err := s.Upload(context.Background(), "gallery/photo/a.jpg", strings.NewReader("bytes"), 5, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/wedsite-zone/gallery/photo/a.jpg", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "image/jpeg", gotContentType)
}

func TestStorage_Upload_ErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid access key"))
	}))
	defer srv.Close()

	s := newTestStorage(srv.URL)
	err := s.Upload(context.Background(), "a.jpg", strings.NewReader("x"), 1, "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid access key")
}

func TestStorage_Delete(t *testing.T) {
	var gotMethod, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := newTestStorage(srv.URL)
	require.NoError(t, s.Delete(context.Background(), "gallery/photo/a.jpg"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/wedsite-zone/gallery/photo/a.jpg", gotPath)
}

func TestStorage_List(t *testing.T) {
	t.Run("decodes object names", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/wedsite-zone/gallery/photo/", r.URL.Path)
			w.Write([]byte(`[{"ObjectName":"a.jpg"},{"ObjectName":"b.jpg"}]`))
		}))
		defer srv.Close()

		names, err := newTestStorage(srv.URL).List(context.Background(), "gallery/photo")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, names)
	})

	t.Run("missing directory is an empty listing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		names, err := newTestStorage(srv.URL).List(context.Background(), "never/written")
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestStorage_CdnURL(t *testing.T) {
	s := newTestStorage("https://storage.bunnycdn.com")

	assert.Equal(t, "https://cdn.example.com/gallery/a.jpg", s.CdnURL("gallery/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/gallery/a.jpg", s.CdnURL("/gallery/a.jpg"))
}
