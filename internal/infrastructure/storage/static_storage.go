package storage

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	catalogapp "github.com/streetmart/backend/internal/application/catalog"
	"github.com/streetmart/backend/internal/infrastructure/config"
)

var _ catalogapp.ImageStorage = (*StaticImageStorage)(nil)

// StaticImageStorage serves images from a fixed base URL, e.g. "/static/images"
type StaticImageStorage struct {
	baseURL string
}

// NewStaticImageStorage creates a StaticImageStorage
func NewStaticImageStorage(baseURL string) *StaticImageStorage {
	return &StaticImageStorage{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL joins the base URL and the key
func (s *StaticImageStorage) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("image key is required")
	}
	return s.baseURL + "/" + strings.TrimLeft(key, "/"), nil
}

// NewImageStorage picks the implementation for the configured provider
func NewImageStorage(cfg *config.StorageConfig, logger *zap.Logger) (catalogapp.ImageStorage, error) {
	if cfg.Provider == config.StorageS3 {
		return NewS3ImageStorage(cfg, WithLogger(logger))
	}
	return NewStaticImageStorage(cfg.StaticBaseURL), nil
}
