// Package upload sends images to the external image host and returns the
// hosted URL that is then stored on backend records.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"koistore/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

var ErrRejected = errors.New("image host rejected upload")

type hostResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

type Uploader struct {
	log    *slog.Logger
	url    string
	apiKey string
	http   *http.Client
}

func New(log *slog.Logger, endpoint, apiKey string, timeout time.Duration) *Uploader {
	return NewWithHTTPClient(log, endpoint, apiKey, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(log *slog.Logger, endpoint, apiKey string, client *http.Client) *Uploader {
	return &Uploader{
		log:    log,
		url:    endpoint,
		apiKey: apiKey,
		http:   client,
	}
}

// RandomName replaces the base name of filename with a UUID and keeps a
// lower-cased extension.
func RandomName(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	const op = "upload.Upload"
	log := u.log.With("op", op)

	name := RandomName(filename)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("%s: read image: %w", op, err)
	}
	if err := mw.WriteField("name", strings.TrimSuffix(name, filepath.Ext(name))); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	endpoint, err := url.Parse(u.url)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	q := endpoint.Query()
	q.Set("key", u.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		log.Error("image host unreachable", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var out hostResponse
	if err := json.Unmarshal(raw, &out); err != nil || resp.StatusCode >= 300 || !out.Success || out.Data.URL == "" {
		log.Warn("upload rejected", slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%s: %w (status %d)", op, ErrRejected, resp.StatusCode)
	}

	log.Debug("image uploaded", slog.String("url", out.Data.URL))
	return out.Data.URL, nil
}
