// AngelaMos | 2026
// s3.go

package export

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver uploads exports under prefix. Each object key carries a
// random suffix so two exports on the same day never overwrite.
type S3Archiver struct {
	client s3API
	bucket string
	prefix string
}

func NewS3Archiver(cfg aws.Config, bucket, prefix string) *S3Archiver {
	return &S3Archiver{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}
}

func (a *S3Archiver) Key(name string) string {
	ext := path.Ext(name)
	base := name[:len(name)-len(ext)]
	return path.Join(a.prefix, base+"-"+uuid.NewString()[:8]+ext)
}

func (a *S3Archiver) Archive(ctx context.Context, name string, body io.ReadSeeker) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(a.Key(name)),
		Body:        body,
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s: %w", a.bucket, err)
	}
	return nil
}
