package dto

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
)

// UploadFile is one file in an upload batch, decoupled from multipart so the
// pipeline can be exercised without an HTTP request.
type UploadFile struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadFileFromMultipart opens a form file. The caller owns closing the
// returned closer after the batch completes.
func UploadFileFromMultipart(fh *multipart.FileHeader) (UploadFile, io.Closer, error) {
	src, err := fh.Open()
	if err != nil {
		return UploadFile{}, nil, fmt.Errorf("open form file %q: %w", fh.Filename, err)
	}
	return UploadFile{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     src,
	}, src, nil
}

// UploadedFile is the outcome of one stored file.
type UploadedFile struct {
	FileName string `json:"fileName"`
	CDNURL   string `json:"cdnUrl"`
}

type UploadBatchInput struct {
	Files      []UploadFile
	AlbumType  string
	MediaType  string
	EventID    *uuid.UUID
	UploadedBy *uuid.UUID
}
