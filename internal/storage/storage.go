// Package storage uploads dashboard images to S3-compatible public buckets.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/config"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Storage writes objects and resolves their public URLs.
type Storage struct {
	client     PutObjectAPI
	publicBase string
	buckets    config.StorageConfig
}

// New builds an S3 client from configuration. Static credentials are used
// when present, otherwise the default AWS credential chain applies.
func New(ctx context.Context, s3Cfg *config.S3Config, storageCfg *config.StorageConfig) (*Storage, error) {
	if s3Cfg == nil || storageCfg == nil {
		return nil, fmt.Errorf("storage config is nil")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3Cfg.Region),
	}
	if s3Cfg.AccessKeyID != "" && s3Cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.Endpoint)
		}
		o.UsePathStyle = s3Cfg.UsePathStyle
	})

	return NewWithClient(client, *storageCfg), nil
}

// NewWithClient wraps an existing S3 client.
func NewWithClient(client PutObjectAPI, buckets config.StorageConfig) *Storage {
	return &Storage{
		client:     client,
		publicBase: strings.TrimRight(buckets.PublicBaseURL, "/"),
		buckets:    buckets,
	}
}

// Buckets returns the configured bucket names.
func (s *Storage) Buckets() config.StorageConfig {
	return s.buckets
}

// Upload stores body under key and returns the public URL of the object.
func (s *Storage) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) (string, error) {
	if s == nil || s.client == nil {
		return "", utils.ErrStorageUnavailable
	}
	if s.buckets.MaxUploadBytes > 0 && size > s.buckets.MaxUploadBytes {
		return "", utils.ErrUploadTooLarge
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		CacheControl:  aws.String("max-age=3600"),
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("S3 upload failed")
		return "", fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}

	log.Info().Str("bucket", bucket).Str("key", key).Msg("Successfully uploaded to S3")
	return s.PublicURL(bucket, key), nil
}

// PublicURL returns <base>/<bucket>/<path>.
func (s *Storage) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, bucket, strings.TrimLeft(objectPath, "/"))
}

// ResolveImageURL passes absolute http(s) URLs through and resolves stored
// relative paths against the bucket. Empty values resolve to "".
func (s *Storage) ResolveImageURL(bucket string, value *string) string {
	if value == nil {
		return ""
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return v
	}
	return s.PublicURL(bucket, v)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeFileName strips directories and characters that do not belong in a key.
func SafeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeName.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "file"
	}
	return name
}

// ProductImageKey builds products/<id>/<uuid>.<ext>.
func ProductImageKey(productID int64, filename string) string {
	ext := strings.TrimPrefix(path.Ext(SafeFileName(filename)), ".")
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("products/%d/%s.%s", productID, uuid.NewString(), strings.ToLower(ext))
}

// BlogImageKey builds blogs/<prefix>/<unix-ms>-<name>.
func BlogImageKey(prefix, filename string, now time.Time) string {
	return fmt.Sprintf("blogs/%s/%d-%s", prefix, now.UnixMilli(), SafeFileName(filename))
}

// ServiceImageKey builds services/<id>/<unix-ms>-<name>.
func ServiceImageKey(serviceID int64, filename string, now time.Time) string {
	return fmt.Sprintf("services/%d/%d-%s", serviceID, now.UnixMilli(), SafeFileName(filename))
}
