package config

import (
	"strings"
	"time"
)

// StorageConfig describes the S3-compatible bucket receiving image uploads.
type StorageConfig struct {
	Endpoint        string        `env:"ENDPOINT"          envDefault:""`
	Region          string        `env:"REGION"            envDefault:"us-east-1"`
	Bucket          string        `env:"BUCKET"            envDefault:""`
	AccessKeyID     string        `env:"ACCESS_KEY_ID"     envDefault:""`
	SecretAccessKey string        `env:"SECRET_ACCESS_KEY" envDefault:""`
	UsePathStyle    bool          `env:"USE_PATH_STYLE"    envDefault:"true"`
	PresignTTL      time.Duration `env:"PRESIGN_TTL"       envDefault:"1h"`
	PartSize        int64         `env:"PART_SIZE"         envDefault:"5242880"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES"  envDefault:"20971520"`
}

// Sanitize trims values and enforces the S3 multipart minimum part size.
func (c *StorageConfig) Sanitize() {
	c.Endpoint = strings.TrimRight(strings.TrimSpace(c.Endpoint), "/")
	c.Region = strings.TrimSpace(c.Region)
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	c.Bucket = strings.TrimSpace(c.Bucket)
	if c.PresignTTL <= 0 {
		c.PresignTTL = time.Hour
	}
	const minPart = 5 * 1024 * 1024
	if c.PartSize < minPart {
		c.PartSize = minPart
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 20 * 1024 * 1024
	}
}

// IsEnabled reports whether enough is configured to reach a bucket.
func (c *StorageConfig) IsEnabled() bool {
	return c.Bucket != ""
}
