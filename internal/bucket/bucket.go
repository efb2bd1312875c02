// Package bucket stores gallery media in an S3 compatible bucket via minio.
// Uploads are converted to webp, resized into a thumbnail and blurhashed.
package bucket

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
)

type Config struct {
	S3AccessKey       string `mapstructure:"s3_access_key"`
	S3SecretAccessKey string `mapstructure:"s3_secret_access_key"`
	S3Endpoint        string `mapstructure:"s3_endpoint"`
	S3BucketName      string `mapstructure:"s3_bucket_name"`
	S3BucketLocation  string `mapstructure:"s3_bucket_location"`
	BaseFolder        string `mapstructure:"base_folder"`
	ThumbnailWidth    int    `mapstructure:"thumbnail_width"`
}

type Bucket struct {
	*minio.Client
	*Config
}

func (c *Config) Init() (dependency.FileStore, error) {
	cli, err := minio.New(c.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.S3AccessKey, c.S3SecretAccessKey, ""),
		Secure: true,
		Region: c.S3BucketLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("can't create s3 client: %w", err)
	}
	if c.ThumbnailWidth <= 0 {
		c.ThumbnailWidth = 480
	}
	return &Bucket{
		Client: cli,
		Config: c,
	}, nil
}

func (b *Bucket) GetBaseFolder() string {
	return b.BaseFolder
}
