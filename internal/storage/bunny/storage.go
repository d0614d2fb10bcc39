// Package bunny talks to a Bunny.net storage zone over its HTTP API and
// composes public CDN URLs for stored objects. The write endpoint and the CDN
// read host are different hosts.
package bunny

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wedsite/internal/config"
)

// FileStorage is what the upload pipeline needs from an object store.
type FileStorage interface {
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, dir string) ([]string, error)
	CdnURL(path string) string
}

type Storage struct {
	endpoint string
	zone     string
	apiKey   string
	cdnURL   string
	client   *http.Client
}

// New builds a storage client from the validated startup config. Nothing here
// reads the environment; cleanenv already failed fast on missing settings.
func New(cfg config.StorageConfig) *Storage {
	return &Storage{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		zone:     cfg.Zone,
		apiKey:   cfg.APIKey,
		cdnURL:   strings.TrimRight(cfg.CDNURL, "/"),
		client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

func (s *Storage) objectURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.zone, strings.TrimLeft(path, "/"))
}

// Upload PUTs one object. The storage API replies 201 on success.
func (s *Storage) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error {
	const op = "bunny.Storage.Upload"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.objectURL(path), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.ContentLength = size
	req.Header.Set("AccessKey", s.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w", op, httpError(resp))
	}

	return nil
}

func (s *Storage) Delete(ctx context.Context, path string) error {
	const op = "bunny.Storage.Delete"

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("AccessKey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w", op, httpError(resp))
	}

	return nil
}

// List returns object names under dir. A 404 means the directory was never
// written to, which is an empty listing rather than an error.
func (s *Storage) List(ctx context.Context, dir string) ([]string, error) {
	const op = "bunny.Storage.List"

	url := s.objectURL(strings.TrimRight(dir, "/") + "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("AccessKey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w", op, httpError(resp))
	}

	var objects []struct {
		ObjectName string `json:"ObjectName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("%s: decode listing: %w", op, err)
	}

	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		names = append(names, obj.ObjectName)
	}

	return names, nil
}

// CdnURL is pure string composition; no network call.
func (s *Storage) CdnURL(path string) string {
	return s.cdnURL + "/" + strings.TrimLeft(path, "/")
}

func httpError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("storage returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
