// Package storage uploads generated files (report exports) to an object
// store.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrDisabled = errors.New("storage not configured")

type UploadInput struct {
	Key         string
	ContentType string
	Body        []byte
}

type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (UploadResult, error)
}

func cleanKey(key string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+key)), "/")
}

// Noop é usado quando nenhum destino foi configurado.
type Noop struct{}

func (Noop) Upload(context.Context, UploadInput) (UploadResult, error) {
	return UploadResult{}, ErrDisabled
}

// Local grava os arquivos num diretório; útil em desenvolvimento.
type Local struct {
	Dir     string
	BaseURL string
}

func (l Local) Upload(_ context.Context, in UploadInput) (UploadResult, error) {
	key := cleanKey(in.Key)
	path := filepath.Join(l.Dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return UploadResult{}, err
	}
	if err := os.WriteFile(path, in.Body, 0o644); err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		Key: key,
		URL: strings.TrimSuffix(l.BaseURL, "/") + "/" + key,
	}, nil
}
