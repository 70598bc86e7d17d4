package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type ObjectStorage struct{ mock.Mock }

func (m *ObjectStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, bucket, path, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *ObjectStorage) PublicURL(bucket, path string) string {
	return m.Called(bucket, path).String(0)
}

func (m *ObjectStorage) SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, bool) {
	args := m.Called(ctx, bucket, path, ttl)
	return args.String(0), args.Bool(1)
}
