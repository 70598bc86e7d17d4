package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culture-passport/internal/config"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

type fakePresigner struct {
	opts s3.PresignOptions
	err  error
}

func (f *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	for _, o := range opts {
		o(&f.opts)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://files.local/" + *in.Bucket + "/" + *in.Key + "?X-Amz-Signature=abc"}, nil
}

func newTestGateway(t *testing.T, put *fakePutter, sign *fakePresigner) (*Gateway, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	g, err := newGateway(put, sign, "https://files.local/storage", log)
	require.NoError(t, err)
	return g, hook
}

func TestUploadReturnsPathUnchanged(t *testing.T) {
	put := &fakePutter{}
	g, _ := newTestGateway(t, put, &fakePresigner{})

	path, err := g.Upload(context.Background(), "submissions", "u1/1700000000-report.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "u1/1700000000-report.pdf", path)
	assert.Equal(t, "submissions", *put.in.Bucket)
	assert.Equal(t, "application/pdf", *put.in.ContentType)
	assert.Equal(t, []byte("%PDF"), put.body)
}

func TestUploadFailureIsAnError(t *testing.T) {
	g, _ := newTestGateway(t, &fakePutter{err: errors.New("access denied")}, &fakePresigner{})

	_, err := g.Upload(context.Background(), "submissions", "a.txt", nil, "")
	assert.ErrorContains(t, err, "access denied")

	_, err = g.Upload(context.Background(), "", "a.txt", nil, "")
	assert.ErrorIs(t, err, ErrInvalidObject)
}

func TestPublicURL(t *testing.T) {
	g, _ := newTestGateway(t, &fakePutter{}, &fakePresigner{})

	assert.Equal(t, "https://files.local/storage/avatars/u1/me.png", g.PublicURL("avatars", "u1/me.png"))
	assert.Equal(t, "https://files.local/storage/avatars/a%20b.png", g.PublicURL("avatars", "a b.png"))
}

func TestSignedURL(t *testing.T) {
	sign := &fakePresigner{}
	g, _ := newTestGateway(t, &fakePutter{}, sign)

	u, ok := g.SignedURL(context.Background(), "private", "doc.pdf", 15*time.Minute)
	require.True(t, ok)
	assert.Contains(t, u, "private/doc.pdf")
	assert.Equal(t, 15*time.Minute, sign.opts.Expires)
}

func TestSignedURLClampsTTL(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, DefaultSignedURLTTL},
		{-time.Second, DefaultSignedURLTTL},
		{30 * 24 * time.Hour, MaxSignedURLTTL},
	}
	for _, tt := range tests {
		sign := &fakePresigner{}
		g, _ := newTestGateway(t, &fakePutter{}, sign)
		_, ok := g.SignedURL(context.Background(), "b", "k", tt.in)
		require.True(t, ok)
		assert.Equal(t, tt.want, sign.opts.Expires)
	}
}

func TestSignedURLFailureDegrades(t *testing.T) {
	g, hook := newTestGateway(t, &fakePutter{}, &fakePresigner{err: errors.New("no credentials")})

	u, ok := g.SignedURL(context.Background(), "private", "doc.pdf", time.Minute)
	assert.False(t, ok)
	assert.Empty(t, u)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "failed to sign object url", hook.LastEntry().Message)
}

func TestNewWithStaticCredentials(t *testing.T) {
	log, _ := test.NewNullLogger()
	g, err := New(context.Background(), config.StorageConfig{
		Endpoint:  "localhost",
		Port:      9000,
		AccessKey: "minio",
		SecretKey: "minio123",
		Region:    "us-east-1",
	}, log)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/files/a.txt", g.PublicURL("files", "a.txt"))

	u, ok := g.SignedURL(context.Background(), "files", "a.txt", time.Minute)
	require.True(t, ok)
	assert.Contains(t, u, "http://localhost:9000/files/a.txt?")
	assert.Contains(t, u, "X-Amz-Expires=60")
}
