// Package upload delivers the archive to the deploy endpoint and cleans up
// the local archive file whatever the outcome.
package upload

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jgivc/uploader/internal/entity"
	"github.com/spf13/afero"
)

const (
	// FieldName is the multipart form field carrying the archive.
	FieldName = "zip"

	HeaderUploadID = "X-Upload-Id"

	// The original tool had no timeout at all and could hang forever on a
	// stuck connection.
	requestTimeout = 5 * time.Minute
)

type Uploader struct {
	fs     afero.Fs
	client *http.Client
	log    *slog.Logger
}

func NewUploader(log *slog.Logger) *Uploader {
	return NewUploaderWithClient(afero.NewOsFs(), &http.Client{Timeout: requestTimeout}, log)
}

func NewUploaderWithClient(fs afero.Fs, client *http.Client, log *slog.Logger) *Uploader {
	return &Uploader{
		fs:     fs,
		client: client,
		log:    log.With(slog.String("item", "Uploader")),
	}
}

// Upload POSTs the archive as a multipart form to domain with auth sent
// verbatim in the Authorization header. A single best-effort attempt, no
// retries. The local archive file is removed afterwards whether the upload
// succeeded or not.
func (u *Uploader) Upload(ctx context.Context, archivePath, domain, auth string) entity.UploadResult {
	res := u.post(ctx, archivePath, domain, auth, uuid.NewString())

	if err := u.fs.Remove(archivePath); err != nil {
		res.CleanupErr = err
		u.log.Error("Cannot remove archive file",
			slog.String("upload_id", res.ID), slog.String("path", archivePath), slog.Any("error", err))
	}

	return res
}

func (u *Uploader) post(ctx context.Context, archivePath, domain, auth, id string) entity.UploadResult {
	res := entity.UploadResult{ID: id}
	log := u.log.With(slog.String("upload_id", id))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile(FieldName, filepath.Base(archivePath))
	if err != nil {
		res.Err = err

		return res
	}

	f, err := u.fs.Open(archivePath)
	if err != nil {
		res.Err = err

		return res
	}

	_, err = io.Copy(part, f)
	f.Close()
	if err != nil {
		res.Err = err

		return res
	}

	if err := mw.Close(); err != nil {
		res.Err = err

		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, domain, &body)
	if err != nil {
		res.Err = err

		return res
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth)
	req.Header.Set(HeaderUploadID, id)

	resp, err := u.client.Do(req)
	if err != nil {
		res.Err = err
		log.Debug("Upload transport failure", slog.Any("error", err))

		return res
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	log.Debug("Upload finished", slog.Int("status", resp.StatusCode))

	return res
}
