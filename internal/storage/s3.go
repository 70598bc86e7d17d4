// Package storage is the object storage gateway for uploaded files. It talks
// to any S3-compatible endpoint (MinIO in development).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"culture-passport/internal/config"
)

const (
	DefaultSignedURLTTL = time.Hour
	MaxSignedURLTTL     = 7 * 24 * time.Hour
)

var ErrInvalidObject = errors.New("bucket and path are required")

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Gateway struct {
	objects objectPutter
	signer  presigner
	public  *url.URL
	log     logrus.FieldLogger
}

// New builds a gateway for cfg. Static credentials are used when both keys
// are set, the default AWS chain otherwise.
func New(ctx context.Context, cfg config.StorageConfig, log logrus.FieldLogger) (*Gateway, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.URL())
			// MinIO and most self-hosted stores need path-style addressing
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicURL
	if publicBase == "" {
		publicBase = cfg.URL()
	}
	return newGateway(client, s3.NewPresignClient(client), publicBase, log)
}

func newGateway(objects objectPutter, signer presigner, publicBase string, log logrus.FieldLogger) (*Gateway, error) {
	public, err := url.Parse(publicBase)
	if err != nil {
		return nil, fmt.Errorf("parse public url: %w", err)
	}
	return &Gateway{objects: objects, signer: signer, public: public, log: log}, nil
}

// Upload stores data at path and returns path unchanged. Callers pick
// collision-free paths themselves.
func (g *Gateway) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if bucket == "" || path == "" {
		return "", ErrInvalidObject
	}
	in := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := g.objects.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, path, err)
	}
	return path, nil
}

// PublicURL composes the address of a public object. It does no I/O and
// does not check that the object exists.
func (g *Gateway) PublicURL(bucket, path string) string {
	return g.public.JoinPath(bucket, path).String()
}

// SignedURL grants temporary read access to a private object. Signing
// failures are logged and reported as ok=false rather than an error.
func (g *Gateway) SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, bool) {
	if bucket == "" || path == "" {
		return "", false
	}
	switch {
	case ttl <= 0:
		ttl = DefaultSignedURLTTL
	case ttl > MaxSignedURLTTL:
		ttl = MaxSignedURLTTL
	}

	req, err := g.signer.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		g.log.WithError(err).WithField("bucket", bucket).Warn("failed to sign object url")
		return "", false
	}
	return req.URL, true
}
