package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/infrastructure/config"
)

func testS3Config() *config.StorageConfig {
	return &config.StorageConfig{
		Provider:        config.StorageS3,
		Endpoint:        "http://localhost:9000",
		Bucket:          "product-images",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		Region:          "ap-south-1",
		UsePathStyle:    true,
		PresignExpiry:   10 * time.Minute,
	}
}

func TestNewS3ImageStorage_Validation(t *testing.T) {
	_, err := NewS3ImageStorage(nil)
	assert.ErrorContains(t, err, "configuration is required")

	_, err = NewS3ImageStorage(&config.StorageConfig{Provider: config.StorageS3})
	assert.ErrorContains(t, err, "bucket is required")
}

func TestS3ImageStorage_URL(t *testing.T) {
	s, err := NewS3ImageStorage(testS3Config())
	require.NoError(t, err)
	assert.Equal(t, "product-images", s.Bucket())

	raw, err := s.URL(context.Background(), "potato.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/product-images/potato.png", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	_, err = s.URL(context.Background(), "")
	assert.Error(t, err)
}

func TestS3ImageStorage_DefaultExpiry(t *testing.T) {
	cfg := testS3Config()
	cfg.PresignExpiry = 0
	s, err := NewS3ImageStorage(cfg)
	require.NoError(t, err)
	assert.Equal(t, defaultPresignExpiry, s.expiry)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "https://s3.example.com", normalizeEndpoint("s3.example.com"))
	assert.Equal(t, "http://minio:9000", normalizeEndpoint("http://minio:9000"))
}

func TestStaticImageStorage(t *testing.T) {
	s := NewStaticImageStorage("/static/images/")

	got, err := s.URL(context.Background(), "onion.png")
	require.NoError(t, err)
	assert.Equal(t, "/static/images/onion.png", got)

	_, err = s.URL(context.Background(), "")
	assert.Error(t, err)
}

func TestNewImageStorage(t *testing.T) {
	static, err := NewImageStorage(&config.StorageConfig{Provider: config.StorageStatic, StaticBaseURL: "/img"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StaticImageStorage{}, static)

	s3, err := NewImageStorage(testS3Config(), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &S3ImageStorage{}, s3)
}
