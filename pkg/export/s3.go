package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/disintegration/imaging"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 10 * time.Second

// S3Options holds the connection settings for an S3-compatible store
type S3Options struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty uses the AWS endpoint for Region
	Region    string
	Bucket    string
	Prefix    string // Prepended to every object key
}

// S3Exporter uploads PNG-encoded images to a bucket
type S3Exporter struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Exporter opens a session with static credentials
func NewS3Exporter(opts S3Options, logger core.Logger) (*S3Exporter, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required: %w", core.ErrInvalidConfig)
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, ""),
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.Endpoint != "" {
		s3Config.Endpoint = aws.String(opts.Endpoint)
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3ExporterWithClient(s3.New(sess), opts.Bucket, opts.Prefix, logger), nil
}

// NewS3ExporterWithClient wraps an existing client
func NewS3ExporterWithClient(client s3iface.S3API, bucket, prefix string, logger core.Logger) *S3Exporter {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Exporter{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Key returns the object key used for name
func (se *S3Exporter) Key(name string) string {
	return path.Join(se.prefix, withPNGExt(name))
}

// Export encodes img as PNG and uploads it
func (se *S3Exporter) Export(ctx context.Context, img image.Image, name string) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := se.Key(name)
	size := int64(buf.Len())
	_, err := se.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(se.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	se.logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, size)
	return nil
}

func withPNGExt(name string) string {
	if path.Ext(name) == ".png" {
		return name
	}
	return name + ".png"
}
