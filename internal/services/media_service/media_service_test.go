package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"wedsite/internal/config"
	"wedsite/internal/domain/models"
	"wedsite/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileStorage struct {
	uploaded []string
	deleted  []string
	failOn   string
}

func (f *fakeFileStorage) Upload(_ context.Context, path string, _ io.Reader, _ int64, _ string) error {
	if f.failOn != "" && strings.Contains(path, f.failOn) {
		return errors.New("storage unavailable")
	}
	f.uploaded = append(f.uploaded, path)
	return nil
}

func (f *fakeFileStorage) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeFileStorage) List(_ context.Context, _ string) ([]string, error) { return nil, nil }

func (f *fakeFileStorage) CdnURL(path string) string { return "https://cdn.example.com/" + path }

func testLimits() config.UploadConfig {
	return config.UploadConfig{
		MaxPhotoSize: 10 * 1024 * 1024,
		MaxVideoSize: 100 * 1024 * 1024,
	}
}

func photoFile(name string, size int64) dto.UploadFile {
	return dto.UploadFile{
		Filename:    name,
		Size:        size,
		ContentType: "image/jpeg",
		Content:     strings.NewReader("fake image bytes"),
	}
}

func TestMediaService_ValidateFile(t *testing.T) {
	service := NewMediaService(slog.Default(), &fakeFileStorage{}, testLimits())

	tests := []struct {
		name      string
		file      dto.UploadFile
		mediaType string
		wantError bool
	}{
		{
			name:      "photo within limit",
			file:      photoFile("ok.jpg", 9*1024*1024),
			mediaType: MediaTypePhoto,
		},
		{
			name:      "photo over 10MB",
			file:      photoFile("big.jpg", 11*1024*1024),
			mediaType: MediaTypePhoto,
			wantError: true,
		},
		{
			name: "unsupported photo type",
			file: dto.UploadFile{
				Filename:    "doc.pdf",
				Size:        1024,
				ContentType: "application/pdf",
			},
			mediaType: MediaTypePhoto,
			wantError: true,
		},
		{
			name: "video within limit",
			file: dto.UploadFile{
				Filename:    "clip.mp4",
				Size:        99 * 1024 * 1024,
				ContentType: "video/mp4",
			},
			mediaType: MediaTypeVideo,
		},
		{
			name: "video over 100MB",
			file: dto.UploadFile{
				Filename:    "long.mp4",
				Size:        101 * 1024 * 1024,
				ContentType: "video/mp4",
			},
			mediaType: MediaTypeVideo,
			wantError: true,
		},
		{
			name:      "unknown media type",
			file:      photoFile("ok.jpg", 1024),
			mediaType: "document",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateFile(tt.file, tt.mediaType)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, models.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMediaService_UploadFiles_RejectsWholeBatch(t *testing.T) {
	fake := &fakeFileStorage{}
	service := NewMediaService(slog.Default(), fake, testLimits())

	input := dto.UploadBatchInput{
		AlbumType: "gallery",
		MediaType: MediaTypePhoto,
		Files: []dto.UploadFile{
			photoFile("ok.jpg", 1024),
			{Filename: "bad.exe", Size: 1024, ContentType: "application/octet-stream"},
		},
	}

	_, err := service.UploadFiles(context.Background(), input)
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	// nothing reached storage
	assert.Empty(t, fake.uploaded)
}

func TestMediaService_UploadFiles_RollsBackOnFailure(t *testing.T) {
	fake := &fakeFileStorage{failOn: "third"}
	service := NewMediaService(slog.Default(), fake, testLimits())

	input := dto.UploadBatchInput{
		AlbumType: "gallery",
		MediaType: MediaTypePhoto,
		Files: []dto.UploadFile{
			photoFile("first.jpg", 1024),
			photoFile("second.jpg", 1024),
			photoFile("third.jpg", 1024),
		},
	}

	_, err := service.UploadFiles(context.Background(), input)
	require.Error(t, err)
	assert.False(t, models.IsValidationError(err))

	// the two stored files were compensated
	require.Len(t, fake.uploaded, 2)
	assert.ElementsMatch(t, fake.uploaded, fake.deleted)
}

func TestMediaService_UploadFiles_PathLayout(t *testing.T) {
	fake := &fakeFileStorage{}
	service := NewMediaService(slog.Default(), fake, testLimits())

	eventID := uuid.New()
	input := dto.UploadBatchInput{
		AlbumType: "gallery",
		MediaType: MediaTypePhoto,
		EventID:   &eventID,
		Files:     []dto.UploadFile{photoFile("holiday photo.JPG", 1024)},
	}

	uploaded, err := service.UploadFiles(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, uploaded, 1)

	prefix := "events/" + eventID.String() + "/gallery/photo/"
	assert.True(t, strings.HasPrefix(uploaded[0].FileName, prefix), "got %s", uploaded[0].FileName)
	assert.True(t, strings.HasSuffix(uploaded[0].FileName, ".jpg"), "extension should be lowered: %s", uploaded[0].FileName)
	assert.Equal(t, "https://cdn.example.com/"+uploaded[0].FileName, uploaded[0].CDNURL)
}
