package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-catalog/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

const defaultPresignTTL = 15 * time.Minute

type (
	AwsS3 interface {
		Enabled() bool
		GetPublicLinkKey(objectKey string) string
		PresignGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
		ResolveImageLink(ctx context.Context, ref string) string
	}

	S3Config struct {
		Bucket    string
		Region    string
		AccessKey string
		SecretKey string
	}

	awsS3 struct {
		bucket    string
		region    string
		presigner *s3.PresignClient
	}
)

func LoadS3Config() S3Config {
	return S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfig("AWS_S3_REGION"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	}
}

// NewAwsS3 returns a disabled storage when no bucket is configured; image
// references are then passed through untouched.
func NewAwsS3(ctx context.Context, cfg S3Config) (AwsS3, error) {
	if cfg.Bucket == "" {
		return &awsS3{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &awsS3{
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		presigner: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
	}, nil
}

func (s *awsS3) Enabled() bool {
	return s.presigner != nil
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, strings.TrimPrefix(objectKey, "/"))
}

func (s *awsS3) PresignGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("s3 storage is not configured")
	}
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimPrefix(objectKey, "/")),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// ResolveImageLink turns a bucket object key into a presigned URL. Absolute
// URLs, empty references and a disabled storage return the input unchanged.
func (s *awsS3) ResolveImageLink(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || !s.Enabled() || isAbsoluteURL(ref) {
		return ref
	}

	link, err := s.PresignGetURL(ctx, ref, defaultPresignTTL)
	if err != nil {
		log.Warnw("presign image link failed", "key", ref, "error", err)
		return s.GetPublicLinkKey(ref)
	}
	return link
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
