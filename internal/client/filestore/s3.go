package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/common"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Config describes an S3-compatible bucket (AWS, MinIO).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// URLValidity is the lifetime of the presigned GET URL. S3 caps it at 7 days.
	URLValidity time.Duration
}

// S3Store uploads objects with PutObject and hands out presigned GET URLs.
type S3Store struct {
	cfg     S3Config
	client  *s3.Client
	presign *s3.PresignClient
	now     func() time.Time
}

// NewS3Store builds the S3 clients. Static credentials are used when an
// access key is configured, the default AWS chain otherwise.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is not configured")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		cfg:     cfg,
		client:  client,
		presign: newS3PresignClient(client),
		now:     time.Now,
	}, nil
}

// storageKey places uploads under a per-day prefix with a unique name.
func storageKey(now time.Time, name string) string {
	return fmt.Sprintf("posts/%d/%02d/%02d/%s_%s", now.Year(), now.Month(), now.Day(), uuid.NewString(), path.Base(name))
}

func (s *S3Store) Put(ctx context.Context, name, contentType string, data []byte) (models.File, error) {
	key := storageKey(s.now().UTC(), name)

	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return models.File{}, mapS3Error("put object", err)
	}

	validity := s.cfg.URLValidity
	if validity <= 0 {
		validity = 15 * time.Minute
	}

	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return models.File{}, mapS3Error("presign get", err)
	}

	return models.File{Name: key, URL: req.URL}, nil
}

// mapS3Error reports service answers as *common.BackendError and anything
// else as common.ErrNetwork.
func mapS3Error(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &common.BackendError{Message: fmt.Sprintf("%s: %s: %s", op, apiErr.ErrorCode(), apiErr.ErrorMessage())}
	}
	return fmt.Errorf("%w: %s: %w", common.ErrNetwork, op, err)
}
