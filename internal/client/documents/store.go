// Package documents stores user credential scans in S3-compatible object
// storage (MinIO in development). Objects are written and read through
// presigned URLs so the store never streams bodies through the SDK.
package documents

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/archedata/internal/netx"
	"github.com/google/uuid"
)

var ErrEmptyDocument = errors.New("empty document")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig
	uploadFn             = netx.UploadToPresignedURL
)

// Store puts documents and hands out temporary download links.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	URL(ctx context.Context, key string) (string, error)
}

type presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Config holds object storage settings.
type Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PresignExpiry time.Duration
}

type S3Store struct {
	bucket     string
	expiry     time.Duration
	presigner  presigner
	httpClient *http.Client
}

// NewS3Store builds a presigning S3 client for cfg. Path-style addressing
// is used so MinIO endpoints work without bucket DNS.
func NewS3Store(ctx context.Context, cfg Config, httpClient *http.Client) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return newStore(s3.NewPresignClient(client), cfg, httpClient), nil
}

func newStore(p presigner, cfg Config, httpClient *http.Client) *S3Store {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 15 * time.Minute
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &S3Store{
		bucket:     cfg.Bucket,
		expiry:     cfg.PresignExpiry,
		presigner:  p,
		httpClient: httpClient,
	}
}

// ObjectKey builds a unique, date-partitioned key under the user's prefix.
func ObjectKey(userID, name string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = "document"
	}
	return fmt.Sprintf("users/%s/%d/%02d/%02d/%s-%s", userID, now.Year(), now.Month(), now.Day(), uuid.New(), base)
}

// Put uploads body under key.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	if len(body) == 0 {
		return ErrEmptyDocument
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := s.presigner.PresignPutObject(ctx, in, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return fmt.Errorf("presign put: %w", err)
	}

	if err := uploadFn(ctx, s.httpClient, req.URL, contentType, body); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// URL returns a time-limited download link for key.
func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
