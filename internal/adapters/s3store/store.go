// Package s3store implements ports.ObjectStore on an S3-compatible bucket.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Rushil0704/auth-client-1/config"
	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// Store uploads through the S3 transfer manager and presigns GET URLs.
type Store struct {
	bucket    string
	uploader  *manager.Uploader
	presigner *s3.PresignClient
	logger    *slog.Logger
}

var _ ports.ObjectStore = (*Store)(nil)

// Options configures a Store.
type Options struct {
	Config config.StorageConfig
	Logger *slog.Logger
}

// New builds an S3 client for the configured endpoint. Static credentials are
// used when provided, otherwise the default AWS credential chain applies.
func New(ctx context.Context, opts Options) (*Store, error) {
	cfg := opts.Config
	if cfg.Bucket == "" {
		return nil, errors.New("s3store: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		bucket: cfg.Bucket,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = cfg.PartSize
		}),
		presigner: s3.NewPresignClient(client),
		logger:    logger.With("component", "s3store", "bucket", cfg.Bucket),
	}, nil
}

// Put streams body to key. progress, when set, observes bytes consumed by the uploader.
func (s *Store) Put(
	ctx context.Context,
	key, contentType string,
	body io.Reader,
	size int64,
	progress ports.ProgressFunc,
) error {
	if key == "" {
		return errors.New("s3store: key is required")
	}

	reader := body
	if progress != nil {
		reader = &progressReader{r: body, fn: progress}
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	start := time.Now()
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "object uploaded", "key", key, "size", size, "duration", time.Since(start))
	return nil
}

// PresignGet returns a signed GET URL valid for ttl.
func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

// progressReader reports the running byte count after every read.
type progressReader struct {
	r    io.Reader
	fn   ports.ProgressFunc
	sent atomic.Int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.fn(p.sent.Add(int64(n)))
	}
	return n, err
}
